// Package viewstate holds the latest committed view state of one window.
//
// A Store publishes whole immutable values: the writer builds the next value
// and commits it in one atomic swap, readers always get a complete value.
// Values must not be mutated after Commit; types holding pointers (big.Int,
// slices) are copied by the writer before changing them.
package viewstate

import "sync/atomic"

// Store is a single-writer, many-reader snapshot cell.
type Store[T any] struct {
	v   atomic.Pointer[T]
	seq atomic.Uint64
}

// New returns a Store holding initial.
func New[T any](initial T) *Store[T] {
	s := &Store[T]{}
	s.v.Store(&initial)
	return s
}

// Load returns the latest committed value.
func (s *Store[T]) Load() T {
	return *s.v.Load()
}

// Commit publishes v and returns its sequence number (1 for the first commit).
func (s *Store[T]) Commit(v T) uint64 {
	s.v.Store(&v)
	return s.seq.Add(1)
}

// Update commits fn(current). Only the single writer may call it.
func (s *Store[T]) Update(fn func(T) T) T {
	next := fn(s.Load())
	s.Commit(next)
	return next
}

// Seq returns the number of commits so far.
func (s *Store[T]) Seq() uint64 {
	return s.seq.Load()
}
