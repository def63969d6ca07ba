// Package uiloop is a single-threaded task queue with scheduled callbacks.
//
// Any goroutine may post work with Do or After; only the goroutine that calls
// Run (or Drain) executes it, so everything posted here is serialized the
// same way a toolkit's UI thread serializes event handlers. The desktop shell
// uses fyne's own loop; this queue stands in for it in headless code and tests.
package uiloop

import (
	"context"
	"sync"
	"time"
)

// Queue is safe for concurrent Do/After calls. Run and Drain must be called
// from one goroutine at a time.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}
	ran   uint64
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Do appends fn to the queue. It never blocks.
func (q *Queue) Do(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// After posts fn to the queue once d has elapsed. Stopping the returned timer
// before it fires cancels the callback.
func (q *Queue) After(d time.Duration, fn func()) *time.Timer {
	return time.AfterFunc(d, func() { q.Do(fn) })
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Ran returns how many tasks have been executed.
func (q *Queue) Ran() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ran
}

// Drain runs queued tasks on the calling goroutine until the queue is empty,
// including tasks posted while draining, and returns how many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return n
		}
		batch := q.tasks
		q.tasks = nil
		q.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
		n += len(batch)
		q.mu.Lock()
		q.ran += uint64(len(batch))
		q.mu.Unlock()
	}
}

// Run executes tasks as they arrive until ctx is done. Tasks still queued
// when ctx ends are left in place.
func (q *Queue) Run(ctx context.Context) error {
	for {
		q.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
		}
	}
}
