// Package journal keeps a bounded in-memory record of worker runs.
package journal

import (
	"log/slog"
	"sync"
	"time"
)

// Actions recorded by the windows.
const (
	ActionStart    = "start"
	ActionExit     = "exit"
	ActionRejected = "rejected"
	ActionIgnored  = "ignored"
)

// DefaultMax is the number of entries kept when New is given a non-positive max.
const DefaultMax = 500

// Entry is one recorded event.
type Entry struct {
	Time     time.Time
	Window   string
	Action   string
	RunID    string
	DelayMS  int64
	Priority int
	Error    string
}

// LogValue renders the entry as a group, omitting empty fields.
func (e Entry) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Time("time", e.Time),
		slog.String("window", e.Window),
		slog.String("action", e.Action),
	}
	if e.RunID != "" {
		attrs = append(attrs, slog.String("run_id", e.RunID))
	}
	if e.DelayMS != 0 {
		attrs = append(attrs, slog.Int64("delay_ms", e.DelayMS))
	}
	if e.Priority != 0 {
		attrs = append(attrs, slog.Int("priority", e.Priority))
	}
	if e.Error != "" {
		attrs = append(attrs, slog.String("error", e.Error))
	}
	return slog.GroupValue(attrs...)
}

// Journal is safe for concurrent use.
type Journal struct {
	mu      sync.Mutex
	max     int
	entries []Entry
	dropped uint64
	now     func() time.Time
}

// New returns an empty journal keeping at most max entries.
func New(max int) *Journal {
	if max <= 0 {
		max = DefaultMax
	}
	return &Journal{max: max, now: time.Now}
}

// Add stamps e with the current UTC time if unset and appends it, dropping
// the oldest entry when full.
func (j *Journal) Add(e Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if e.Time.IsZero() {
		e.Time = j.now().UTC()
	}
	if len(j.entries) == j.max {
		copy(j.entries, j.entries[1:])
		j.entries = j.entries[:len(j.entries)-1]
		j.dropped++
	}
	j.entries = append(j.entries, e)
}

// Entries returns a copy of the recorded entries, oldest first.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Dropped returns how many entries were evicted to respect the cap.
func (j *Journal) Dropped() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.dropped
}

// Log writes a summary record followed by one record per entry.
func (j *Journal) Log(log *slog.Logger) {
	entries := j.Entries()
	log.Info("journal: summary", "entries", len(entries), "dropped", j.Dropped())
	for _, e := range entries {
		log.Info("journal: run event", "event", e)
	}
}
