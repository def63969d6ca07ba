// Package controller binds a window's controls to its worker loop.
//
// One Controller type serves all three windows; what differs between them is
// only the step function and the loop options it is built with. Start, Stop
// and Close are meant to be called from the UI thread.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ligun0805/threadwin/internal/worker"
)

// ErrClosed is returned by Start after Close.
var ErrClosed = errors.New("controller: window closed")

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// OnStart registers fn to run on the UI thread right before a new run is
// launched, while no worker is alive. Used to reset view state.
func OnStart(fn func()) Option {
	return func(c *Controller) { c.onStart = fn }
}

// Controller owns one worker loop and the step it runs.
type Controller struct {
	name    string
	loop    *worker.Loop
	step    worker.Step
	log     *slog.Logger
	onStart func()

	mu     sync.Mutex
	closed bool
	last   worker.Config
}

// New returns a controller driving loop with step.
func New(name string, loop *worker.Loop, step worker.Step, opts ...Option) *Controller {
	c := &Controller{name: name, loop: loop, step: step, log: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("window", name)
	return c
}

// Name returns the window name.
func (c *Controller) Name() string { return c.name }

// Loop returns the underlying worker loop.
func (c *Controller) Loop() *worker.Loop { return c.loop }

// Start validates the delay text and priority and launches the worker.
// Invalid input returns an error wrapping worker.ErrInvalidDelay and nothing
// is launched. It reports false without error when a run is still alive,
// including one that is winding down after Stop.
func (c *Controller) Start(delayText string, priority int) (bool, error) {
	cfg, err := worker.ParseConfig(delayText, priority)
	if err != nil {
		c.log.Warn("controller: start rejected", "delay", delayText, "error", err)
		return false, fmt.Errorf("%s: %w", c.name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false, ErrClosed
	}
	if c.loop.Running() {
		c.log.Debug("controller: start ignored, run still alive", "stopping", c.loop.Stopping())
		return false, nil
	}
	if c.onStart != nil {
		c.onStart()
	}
	started, err := c.loop.Start(cfg, c.step)
	if err != nil {
		return false, fmt.Errorf("%s: %w", c.name, err)
	}
	if started {
		c.last = cfg
	}
	return started, nil
}

// Stop requests the worker to end. It does not wait.
func (c *Controller) Stop() {
	if c.loop.Stop() {
		c.log.Debug("controller: stop requested")
	}
}

// Close stops the worker and refuses later starts.
func (c *Controller) Close() {
	c.mu.Lock()
	already := c.closed
	c.closed = true
	c.mu.Unlock()
	c.Stop()
	if !already {
		c.log.Info("controller: closed")
	}
}

// Running reports whether the worker is alive.
func (c *Controller) Running() bool { return c.loop.Running() }

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Config returns the configuration of the most recent launched run.
func (c *Controller) Config() worker.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
