package server

import (
	"sync"

	"catidle/internal/pet"
)

// DefaultEventCapacity is how many recent events the log keeps
const DefaultEventCapacity = 256

// EventEntry is one buffered engine event
type EventEntry struct {
	Seq   uint64    `json:"seq"`
	Type  string    `json:"type"`
	Event pet.Event `json:"data"`
}

// EventLog is a bounded pet.Notifier buffer that HTTP clients poll with a
// sequence cursor. It is safe for concurrent use.
type EventLog struct {
	mu      sync.RWMutex
	entries []EventEntry
	next    uint64
	cap     int
}

func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = DefaultEventCapacity
	}
	return &EventLog{next: 1, cap: capacity}
}

func (l *EventLog) Notify(ev pet.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, EventEntry{Seq: l.next, Type: ev.EventName(), Event: ev})
	l.next++
	if over := len(l.entries) - l.cap; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
}

// Since returns the buffered events with a sequence greater than seq and the
// cursor to pass next time.
func (l *EventLog) Since(seq uint64) ([]EventEntry, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []EventEntry{}
	for _, e := range l.entries {
		if e.Seq > seq {
			out = append(out, e)
		}
	}
	return out, l.next - 1
}
