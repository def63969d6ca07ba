package worker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority range mirrors the classic 1..10 thread priority scale.
const (
	MinPriority  = 1
	NormPriority = 5
	MaxPriority  = 10
)

// MaxDelay bounds the sleep between iterations.
const MaxDelay = time.Hour

// ErrInvalidDelay is returned when the delay text is not a positive number of milliseconds.
var ErrInvalidDelay = errors.New("invalid delay")

// Config is the per-run setting a loop is started with.
type Config struct {
	Delay    time.Duration
	Priority int
}

// ParseConfig validates user input taken from the delay field and priority slider.
// The priority is clamped, the delay must be a positive integer in milliseconds.
func ParseConfig(delayText string, priority int) (Config, error) {
	s := strings.TrimSpace(delayText)
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %q is not a number of milliseconds", ErrInvalidDelay, s)
	}
	if ms <= 0 {
		return Config{}, fmt.Errorf("%w: %d ms, must be greater than zero", ErrInvalidDelay, ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d > MaxDelay {
		return Config{}, fmt.Errorf("%w: %d ms exceeds %v", ErrInvalidDelay, ms, MaxDelay)
	}
	return Config{Delay: d, Priority: ClampPriority(priority)}, nil
}

// ClampPriority forces p into [MinPriority, MaxPriority].
func ClampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

// Validate checks a Config built without ParseConfig.
func (c Config) Validate() error {
	if c.Delay <= 0 {
		return fmt.Errorf("%w: %v, must be greater than zero", ErrInvalidDelay, c.Delay)
	}
	if c.Delay > MaxDelay {
		return fmt.Errorf("%w: %v exceeds %v", ErrInvalidDelay, c.Delay, MaxDelay)
	}
	return nil
}
