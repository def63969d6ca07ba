package controller

import (
	"context"

	"github.com/ligun0805/threadwin/internal/redraw"
	"github.com/ligun0805/threadwin/internal/scene"
	"github.com/ligun0805/threadwin/internal/viewstate"
	"github.com/ligun0805/threadwin/internal/worker"
)

// Each step commits the new state before requesting the redraw that shows it.

// BallStep advances the ball inside the latest surface bounds.
func BallStep(ball *viewstate.Store[scene.Ball], bounds *viewstate.Store[scene.Bounds], b *redraw.Bridge) worker.Step {
	return func(context.Context) error {
		ball.Commit(scene.StepBall(ball.Load(), bounds.Load()))
		b.Request()
		return nil
	}
}

// CounterStep prints the next Fibonacci line.
func CounterStep(counter *viewstate.Store[scene.Counter], b *redraw.Bridge) worker.Step {
	return func(context.Context) error {
		counter.Commit(scene.StepCounter(counter.Load()))
		b.Request()
		return nil
	}
}

// MarqueeStep scrolls the label. It is meant to run on the UI thread, so it
// draws directly through the bridge instead of queueing.
func MarqueeStep(m *viewstate.Store[scene.Marquee], bounds *viewstate.Store[scene.Bounds], b *redraw.Bridge) worker.Step {
	return func(context.Context) error {
		m.Commit(scene.StepMarquee(m.Load(), float32(bounds.Load().Width)))
		b.Flush()
		return nil
	}
}

// ResetCounter restarts the sequence at F(0) and keeps the printed lines.
func ResetCounter(counter *viewstate.Store[scene.Counter]) func() {
	return func() {
		c := counter.Load()
		counter.Commit(scene.Counter{Fib: scene.NewFib(), Out: c.Out})
	}
}
