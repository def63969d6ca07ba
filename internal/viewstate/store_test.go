package viewstate

import (
	"sync"
	"testing"
)

type pair struct{ A, B int }

func TestLoadReturnsInitial(t *testing.T) {
	s := New(pair{1, 2})
	if got := s.Load(); got != (pair{1, 2}) {
		t.Fatalf("Load() = %+v, want {1 2}", got)
	}
	if s.Seq() != 0 {
		t.Fatalf("Seq() = %d, want 0", s.Seq())
	}
}

func TestCommitAndUpdate(t *testing.T) {
	s := New(pair{})
	if n := s.Commit(pair{3, 3}); n != 1 {
		t.Fatalf("Commit() = %d, want 1", n)
	}
	got := s.Update(func(p pair) pair { return pair{p.A + 1, p.B + 1} })
	if got != (pair{4, 4}) || s.Load() != got {
		t.Fatalf("Update() = %+v, Load() = %+v, want {4 4}", got, s.Load())
	}
	if s.Seq() != 2 {
		t.Fatalf("Seq() = %d, want 2", s.Seq())
	}
}

// A reader racing the writer must never observe a half-written value.
func TestReadersSeeWholeValues(t *testing.T) {
	s := New(pair{})
	const n = 10000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= n; i++ {
			s.Commit(pair{i, -i})
		}
	}()
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := 0
			for i := 0; i < n; i++ {
				p := s.Load()
				if p.A != -p.B {
					t.Errorf("torn read %+v", p)
					return
				}
				if p.A < last {
					t.Errorf("value went backwards: %d after %d", p.A, last)
					return
				}
				last = p.A
			}
		}()
	}
	wg.Wait()
	if got := s.Load(); got.A != n {
		t.Fatalf("final Load() = %+v, want A=%d", got, n)
	}
}
