// Package worker runs a cancellable step function on a fixed cadence.
//
// A Loop owns at most one run at a time. A run is started with a validated
// Config and stopped cooperatively: cancellation is checked before every
// step and interrupts the sleep between steps, so a run ends within one
// delay interval of Stop. Cancellation is never reported as an error.
//
// Steps execute on the run's own goroutine by default. With OnDispatcher the
// goroutine only keeps time and each step is handed to the dispatcher (the UI
// thread), which makes the step the sole writer of UI-owned state.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNilStep is returned by Start when no step function is given.
	ErrNilStep = errors.New("worker: nil step")
	// ErrPanic wraps a value recovered from a panicking step.
	ErrPanic = errors.New("worker: step panicked")
)

// Step performs one unit of work. A non-nil error ends the run.
type Step func(ctx context.Context) error

// Dispatcher schedules fn on another thread, typically the UI event loop.
type Dispatcher interface {
	Do(fn func())
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for lifecycle records.
func WithLogger(l *slog.Logger) Option {
	return func(lp *Loop) {
		if l != nil {
			lp.log = l
		}
	}
}

// OnDispatcher makes every step run through d instead of on the loop goroutine.
func OnDispatcher(d Dispatcher) Option {
	return func(lp *Loop) { lp.dispatch = d }
}

// OnExit registers fn to be called after each run terminates, on the run's
// goroutine and before Done is closed. err is nil for a cancelled run.
func OnExit(fn func(runID string, err error)) Option {
	return func(lp *Loop) { lp.onExit = fn }
}

// Loop is a restartable worker. The zero value is not usable; use New.
type Loop struct {
	name     string
	log      *slog.Logger
	dispatch Dispatcher
	onExit   func(runID string, err error)

	mu       sync.Mutex
	running  bool // goroutine alive
	stopping bool // cancel requested, goroutine not yet gone
	cancel   context.CancelFunc
	done     chan struct{}
	runID    string
	runs     uint64
}

// New returns an idle loop.
func New(name string, opts ...Option) *Loop {
	closed := make(chan struct{})
	close(closed)
	l := &Loop{name: name, log: slog.Default(), done: closed}
	for _, o := range opts {
		o(l)
	}
	l.log = l.log.With("loop", name)
	return l
}

// Name returns the name given to New.
func (l *Loop) Name() string { return l.name }

// RunID returns the ID of the live run, or of the last one if idle.
func (l *Loop) RunID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.runID
}

// Start launches a run unless one is already alive, in which case it returns
// false and does nothing. A run that is still winding down after Stop counts
// as alive.
func (l *Loop) Start(cfg Config, step Step) (bool, error) {
	if step == nil {
		return false, ErrNilStep
	}
	if err := cfg.Validate(); err != nil {
		return false, err
	}
	cfg.Priority = ClampPriority(cfg.Priority)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return false, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	runID := uuid.NewString()
	l.running, l.stopping = true, false
	l.cancel, l.done, l.runID = cancel, done, runID
	l.runs++

	l.log.Info("worker: run started",
		"run_id", runID,
		"delay", cfg.Delay,
		"priority", cfg.Priority,
		"dispatched", l.dispatch != nil,
	)
	go l.run(ctx, done, runID, cfg, step)
	return true, nil
}

// Stop requests cancellation of the live run and returns immediately.
// It returns false when there is nothing to stop.
func (l *Loop) Stop() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running || l.stopping {
		return false
	}
	l.stopping = true
	l.cancel()
	l.log.Debug("worker: stop requested", "run_id", l.runID)
	return true
}

// Running reports whether a run goroutine is alive.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Stopping reports whether Stop was called and the run goroutine has not
// exited yet.
func (l *Loop) Stopping() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running && l.stopping
}

// Done returns a channel closed when the current (or most recent) run has terminated.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// Wait blocks until the current run terminates or ctx is done.
func (l *Loop) Wait(ctx context.Context) error {
	select {
	case <-l.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Runs returns how many runs have been started.
func (l *Loop) Runs() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.runs
}

func (l *Loop) run(ctx context.Context, done chan struct{}, runID string, cfg Config, step Step) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
		l.finish(done, runID, err)
	}()

	if l.dispatch == nil {
		applyPriority(cfg.Priority, l.log)
	}

	var iterations uint64
	for {
		if ctx.Err() != nil {
			return
		}
		if err = l.iterate(ctx, step); err != nil {
			return
		}
		iterations++
		if !sleep(ctx, cfg.Delay) {
			l.log.Debug("worker: sleep interrupted", "run_id", runID, "iterations", iterations)
			return
		}
	}
}

func (l *Loop) iterate(ctx context.Context, step Step) error {
	if l.dispatch == nil {
		return step(ctx)
	}
	res := make(chan error, 1)
	l.dispatch.Do(func() {
		// Stop is called from the same thread, so a step queued before Stop
		// but run after it is skipped here.
		if ctx.Err() != nil {
			res <- nil
			return
		}
		res <- safeStep(ctx, step)
	})
	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return nil
	}
}

func (l *Loop) finish(done chan struct{}, runID string, err error) {
	l.mu.Lock()
	l.running, l.stopping = false, false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()

	if err != nil {
		l.log.Error("worker: run failed", "run_id", runID, "error", err)
	} else {
		l.log.Info("worker: run stopped", "run_id", runID)
	}
	if l.onExit != nil {
		l.onExit(runID, err)
	}
	close(done)
}

func safeStep(ctx context.Context, step Step) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return step(ctx)
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
