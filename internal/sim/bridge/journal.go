package bridge

import (
	"sync"
	"time"
)

// Entry is one operator-facing line in the activity journal.
type Entry struct {
	Timestamp time.Time
	PathID    string
	Message   string
}

// journal keeps a bounded, oldest-first-evicted log of path lifecycle
// events.
type journal struct {
	mu      sync.Mutex
	entries []Entry
	maxSize int
}

func newJournal(maxSize int) *journal {
	return &journal{maxSize: maxSize}
}

func (j *journal) add(pathID, message string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries = append(j.entries, Entry{
		Timestamp: time.Now(),
		PathID:    pathID,
		Message:   message,
	})
	if len(j.entries) > j.maxSize {
		j.entries = j.entries[len(j.entries)-j.maxSize:]
	}
}

// Journal returns a copy of the recent activity entries.
func (b *Bridge) Journal() []Entry {
	b.journal.mu.Lock()
	defer b.journal.mu.Unlock()

	out := make([]Entry, len(b.journal.entries))
	copy(out, b.journal.entries)
	return out
}
