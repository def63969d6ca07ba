// Package redraw marshals "state changed" notices from worker goroutines to
// the UI thread.
//
// A Bridge keeps at most one draw queued on the dispatcher. Requests made
// while a draw is pending are folded into it. The draw clears the pending flag
// before it reads state, so any commit that raced with a running draw causes
// one more draw: the last committed state is always the last one drawn.
package redraw

import "sync/atomic"

// Dispatcher runs fn on the UI thread.
type Dispatcher interface {
	Do(fn func())
}

// DispatchFunc adapts a plain function (for example fyne.Do) to Dispatcher.
type DispatchFunc func(fn func())

// Do calls f(fn).
func (f DispatchFunc) Do(fn func()) { f(fn) }

// Bridge coalesces redraw requests.
type Bridge struct {
	d    Dispatcher
	draw func()

	pending   atomic.Bool
	requested atomic.Uint64
	drawn     atomic.Uint64
}

// New returns a Bridge that runs draw on d.
func New(d Dispatcher, draw func()) *Bridge {
	return &Bridge{d: d, draw: draw}
}

// Request asks for a redraw. Safe from any goroutine; never blocks.
func (b *Bridge) Request() {
	b.requested.Add(1)
	if !b.pending.CompareAndSwap(false, true) {
		return
	}
	b.d.Do(b.Flush)
}

// Flush draws immediately. UI thread only.
func (b *Bridge) Flush() {
	b.pending.Store(false)
	b.draw()
	b.drawn.Add(1)
}

// Requested returns the number of Request calls.
func (b *Bridge) Requested() uint64 { return b.requested.Load() }

// Drawn returns the number of draws performed.
func (b *Bridge) Drawn() uint64 { return b.drawn.Load() }

// Pending reports whether a draw is queued and has not started yet.
func (b *Bridge) Pending() bool { return b.pending.Load() }
