// Package lifecycle decides when closing windows should end the program.
package lifecycle

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Policy selects what closing a window does to the rest of the program.
type Policy int

const (
	// CloseLast quits once every tracked window has been closed.
	CloseLast Policy = iota
	// CloseAll quits as soon as any tracked window is closed.
	CloseAll
)

func (p Policy) String() string {
	switch p {
	case CloseAll:
		return "all"
	default:
		return "last"
	}
}

// ParsePolicy accepts "last" or "all" (case-insensitive). Empty means CloseLast.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last":
		return CloseLast, nil
	case "all", "any":
		return CloseAll, nil
	}
	return CloseLast, fmt.Errorf("lifecycle: unknown close policy %q", s)
}

// Tracker counts open windows and fires onQuit at most once.
type Tracker struct {
	policy Policy
	onQuit func()

	mu   sync.Mutex
	open map[string]struct{}
	quit bool
}

// NewTracker returns an empty tracker. onQuit may be nil.
func NewTracker(p Policy, onQuit func()) *Tracker {
	return &Tracker{policy: p, onQuit: onQuit, open: make(map[string]struct{})}
}

// Policy returns the tracker's close policy.
func (t *Tracker) Policy() Policy { return t.policy }

// Opened records a window as open.
func (t *Tracker) Opened(name string) {
	t.mu.Lock()
	t.open[name] = struct{}{}
	t.mu.Unlock()
}

// Closed records a window as closed and reports whether the program should
// now quit. Closing an unknown window, or closing after quit, returns false.
func (t *Tracker) Closed(name string) bool {
	t.mu.Lock()
	if _, ok := t.open[name]; !ok || t.quit {
		t.mu.Unlock()
		return false
	}
	delete(t.open, name)
	quit := t.policy == CloseAll || len(t.open) == 0
	if quit {
		t.quit = true
	}
	t.mu.Unlock()

	if quit && t.onQuit != nil {
		t.onQuit()
	}
	return quit
}

// Open returns the number of open windows.
func (t *Tracker) Open() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.open)
}

// Names returns the open window names, sorted.
func (t *Tracker) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.open))
	for n := range t.open {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
