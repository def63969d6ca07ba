package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ligun0805/threadwin/internal/uiloop"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitDone(t *testing.T, l *Loop, within time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), within)
	defer cancel()
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("Wait() failed: %v", err)
	}
}

func TestStopInterruptsSleep(t *testing.T) {
	l := New("test", WithLogger(quietLogger()))
	first := make(chan struct{})
	var steps atomic.Int64
	step := func(ctx context.Context) error {
		if steps.Add(1) == 1 {
			close(first)
		}
		return nil
	}

	const delay = 2 * time.Second
	started, err := l.Start(Config{Delay: delay, Priority: NormPriority}, step)
	if err != nil || !started {
		t.Fatalf("Start() = %v, %v, want true, nil", started, err)
	}
	<-first

	begin := time.Now()
	if !l.Stop() {
		t.Fatal("Stop() = false, want true")
	}
	waitDone(t, l, delay)
	if elapsed := time.Since(begin); elapsed >= delay {
		t.Fatalf("run ended after %v, sleep was not interrupted", elapsed)
	}
	if l.Running() {
		t.Fatal("Running() = true after Wait")
	}
}

func TestNoMutationAfterStop(t *testing.T) {
	l := New("test", WithLogger(quietLogger()))
	var steps atomic.Int64
	step := func(ctx context.Context) error {
		steps.Add(1)
		return nil
	}
	const delay = 5 * time.Millisecond
	if _, err := l.Start(Config{Delay: delay, Priority: 3}, step); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	time.Sleep(4 * delay)
	l.Stop()
	waitDone(t, l, time.Second)

	after := steps.Load()
	time.Sleep(10 * delay)
	if got := steps.Load(); got != after {
		t.Fatalf("steps = %d after stop, want %d", got, after)
	}
}

func TestStartTwiceIsNoop(t *testing.T) {
	l := New("test", WithLogger(quietLogger()))
	var active, maxActive atomic.Int64
	step := func(ctx context.Context) error {
		n := active.Add(1)
		if n > maxActive.Load() {
			maxActive.Store(n)
		}
		active.Add(-1)
		return nil
	}
	cfg := Config{Delay: time.Millisecond, Priority: NormPriority}

	if ok, err := l.Start(cfg, step); !ok || err != nil {
		t.Fatalf("first Start() = %v, %v, want true, nil", ok, err)
	}
	if ok, err := l.Start(cfg, step); ok || err != nil {
		t.Fatalf("second Start() = %v, %v, want false, nil", ok, err)
	}
	if n := l.Runs(); n != 1 {
		t.Fatalf("Runs() = %d, want 1", n)
	}
	time.Sleep(20 * time.Millisecond)
	l.Stop()
	waitDone(t, l, time.Second)
	if maxActive.Load() > 1 {
		t.Fatalf("max concurrent steps = %d, want 1", maxActive.Load())
	}
}

func TestStopWhenIdle(t *testing.T) {
	l := New("test", WithLogger(quietLogger()))
	if l.Stop() {
		t.Fatal("Stop() on idle loop = true, want false")
	}
	if l.Running() {
		t.Fatal("Running() = true on idle loop")
	}
	select {
	case <-l.Done():
	default:
		t.Fatal("Done() of idle loop is not closed")
	}
}

func TestStopTwiceIsNoop(t *testing.T) {
	l := New("test", WithLogger(quietLogger()))
	step := func(ctx context.Context) error { return nil }
	if _, err := l.Start(Config{Delay: time.Second}, step); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	first := l.Stop()
	second := l.Stop()
	if !first || second {
		t.Fatalf("Stop(), Stop() = %v, %v, want true, false", first, second)
	}
	waitDone(t, l, time.Second)
}

func TestRestartAfterStop(t *testing.T) {
	l := New("test", WithLogger(quietLogger()))
	step := func(ctx context.Context) error { return nil }
	cfg := Config{Delay: time.Second}

	if _, err := l.Start(cfg, step); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	l.Stop()
	waitDone(t, l, time.Second)

	ok, err := l.Start(cfg, step)
	if !ok || err != nil {
		t.Fatalf("restart Start() = %v, %v, want true, nil", ok, err)
	}
	if n := l.Runs(); n != 2 {
		t.Fatalf("Runs() = %d, want 2", n)
	}
	l.Stop()
	waitDone(t, l, time.Second)
}

func TestStartRejectsBadInput(t *testing.T) {
	l := New("test", WithLogger(quietLogger()))
	if _, err := l.Start(Config{Delay: 0}, func(context.Context) error { return nil }); !errors.Is(err, ErrInvalidDelay) {
		t.Fatalf("Start(delay=0) error = %v, want ErrInvalidDelay", err)
	}
	if _, err := l.Start(Config{Delay: time.Millisecond}, nil); !errors.Is(err, ErrNilStep) {
		t.Fatalf("Start(nil) error = %v, want ErrNilStep", err)
	}
	if l.Running() {
		t.Fatal("Running() = true after rejected Start")
	}
}

func TestStepErrorEndsRun(t *testing.T) {
	boom := errors.New("boom")
	exit := make(chan error, 1)
	l := New("test", WithLogger(quietLogger()), OnExit(func(_ string, err error) { exit <- err }))

	if _, err := l.Start(Config{Delay: time.Millisecond}, func(context.Context) error { return boom }); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	select {
	case err := <-exit:
		if !errors.Is(err, boom) {
			t.Fatalf("exit error = %v, want %v", err, boom)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not end after step error")
	}
	if l.Running() {
		t.Fatal("Running() = true after failed run")
	}
}

func TestPanicIsContained(t *testing.T) {
	exit := make(chan error, 1)
	l := New("test", WithLogger(quietLogger()), OnExit(func(_ string, err error) { exit <- err }))

	step := func(context.Context) error { panic("step exploded") }
	if _, err := l.Start(Config{Delay: time.Millisecond}, step); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	select {
	case err := <-exit:
		if !errors.Is(err, ErrPanic) {
			t.Fatalf("exit error = %v, want ErrPanic", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not end after panic")
	}
}

func TestCancelledRunExitsWithoutError(t *testing.T) {
	exit := make(chan error, 1)
	l := New("test", WithLogger(quietLogger()), OnExit(func(_ string, err error) { exit <- err }))
	if _, err := l.Start(Config{Delay: time.Second}, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	l.Stop()
	select {
	case err := <-exit:
		if err != nil {
			t.Fatalf("exit error = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not exit")
	}
}

func waitQueued(t *testing.T, q *uiloop.Queue) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for q.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no step was dispatched")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestDispatchedStepRunsOnQueue(t *testing.T) {
	q := uiloop.New()
	l := New("test", WithLogger(quietLogger()), OnDispatcher(q))
	var steps int // only touched by the draining goroutine
	step := func(context.Context) error {
		steps++
		return nil
	}
	if _, err := l.Start(Config{Delay: time.Millisecond}, step); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	waitQueued(t, q)
	if steps != 0 {
		t.Fatalf("steps = %d before drain, want 0", steps)
	}
	q.Drain()
	if steps != 1 {
		t.Fatalf("steps = %d after drain, want 1", steps)
	}
	l.Stop()
	waitDone(t, l, time.Second)
	q.Drain()
}

func TestDispatchedStepSkippedAfterStop(t *testing.T) {
	q := uiloop.New()
	l := New("test", WithLogger(quietLogger()), OnDispatcher(q))
	var steps int
	step := func(context.Context) error {
		steps++
		return nil
	}
	if _, err := l.Start(Config{Delay: time.Millisecond}, step); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	waitQueued(t, q)
	l.Stop()
	waitDone(t, l, time.Second)
	q.Drain()
	if steps != 0 {
		t.Fatalf("steps = %d, want 0 for a step queued before Stop", steps)
	}
}

func TestDispatchedPanicIsContained(t *testing.T) {
	q := uiloop.New()
	exit := make(chan error, 1)
	l := New("test", WithLogger(quietLogger()), OnDispatcher(q), OnExit(func(_ string, err error) { exit <- err }))
	if _, err := l.Start(Config{Delay: time.Millisecond}, func(context.Context) error { panic("ui step") }); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	waitQueued(t, q)
	q.Drain()
	select {
	case err := <-exit:
		if !errors.Is(err, ErrPanic) {
			t.Fatalf("exit error = %v, want ErrPanic", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not end after dispatched panic")
	}
}

func TestRunIDChangesPerRun(t *testing.T) {
	exited := make(chan string, 2)
	l := New("test", WithLogger(quietLogger()), OnExit(func(runID string, err error) {
		exited <- runID
	}))
	if l.RunID() != "" {
		t.Fatalf("RunID() = %q before any run, want empty", l.RunID())
	}
	step := func(context.Context) error { return nil }

	if _, err := l.Start(Config{Delay: time.Second, Priority: NormPriority}, step); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	first := l.RunID()
	l.Stop()
	waitDone(t, l, time.Second)

	if _, err := l.Start(Config{Delay: time.Second, Priority: NormPriority}, step); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	second := l.RunID()
	l.Stop()
	waitDone(t, l, time.Second)

	if first == "" || first == second {
		t.Fatalf("run IDs = %q, %q, want two distinct IDs", first, second)
	}
	for _, want := range []string{first, second} {
		select {
		case got := <-exited:
			if got != want {
				t.Fatalf("OnExit run ID = %q, want %q", got, want)
			}
		case <-time.After(time.Second):
			t.Fatal("OnExit not called")
		}
	}
}
