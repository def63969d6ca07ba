package scene

import (
	"fmt"
	"math/big"
	"strings"
)

// Fib is the running Fibonacci pair: A = F(N), B = F(N+1).
// Values are arbitrary precision and never wrap. A and B are shared between
// successive values and must not be mutated.
type Fib struct {
	N    uint64
	A, B *big.Int
}

// NewFib starts the sequence at F(0) = 0, F(1) = 1.
func NewFib() Fib {
	return Fib{A: big.NewInt(0), B: big.NewInt(1)}
}

// StepFib returns the line for F(N) and the pair advanced by one.
func StepFib(f Fib) (string, Fib) {
	line := fmt.Sprintf("Fib(%d) = %s", f.N, f.A.String())
	next := Fib{N: f.N + 1, A: f.B, B: new(big.Int).Add(f.A, f.B)}
	return line, next
}

// DefaultMaxLines is how many printed lines a Transcript keeps.
const DefaultMaxLines = 1000

// Transcript is the bounded tail of printed lines. Append returns a new
// value; the receiver is left unchanged.
type Transcript struct {
	lines   []string
	max     int
	dropped uint64
}

// NewTranscript keeps at most max lines; max <= 0 means DefaultMaxLines.
func NewTranscript(max int) Transcript {
	if max <= 0 {
		max = DefaultMaxLines
	}
	return Transcript{max: max}
}

// Append returns t with line added, dropping the oldest line when full.
func (t Transcript) Append(line string) Transcript {
	if t.max <= 0 {
		t.max = DefaultMaxLines
	}
	start := 0
	if len(t.lines) >= t.max {
		start = len(t.lines) - t.max + 1
	}
	lines := make([]string, 0, len(t.lines)-start+1)
	lines = append(lines, t.lines[start:]...)
	lines = append(lines, line)
	return Transcript{lines: lines, max: t.max, dropped: t.dropped + uint64(start)}
}

// Lines returns the retained lines, oldest first. Callers must not modify it.
func (t Transcript) Lines() []string { return t.lines }

// Len returns the number of retained lines.
func (t Transcript) Len() int { return len(t.lines) }

// Dropped returns how many lines were discarded to stay within the limit.
func (t Transcript) Dropped() uint64 { return t.dropped }

// String joins the retained lines, one per row.
func (t Transcript) String() string {
	if len(t.lines) == 0 {
		return ""
	}
	return strings.Join(t.lines, "\n") + "\n"
}

// Counter is the view state of the number printer window.
type Counter struct {
	Fib Fib
	Out Transcript
}

// NewCounter returns a fresh printer keeping at most maxLines lines.
func NewCounter(maxLines int) Counter {
	return Counter{Fib: NewFib(), Out: NewTranscript(maxLines)}
}

// StepCounter prints the next Fibonacci line.
func StepCounter(c Counter) Counter {
	line, next := StepFib(c.Fib)
	return Counter{Fib: next, Out: c.Out.Append(line)}
}
