// Package ratestore holds the shared "last request start" used to space
// requests made with one API key. Memory serves a single process; Redis lets
// several processes share the same budget.
package ratestore

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process store guarded by a mutex.
type Memory struct {
	mu   sync.Mutex
	last time.Time
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Reserve claims the next start slot and returns the previous one.
func (m *Memory) Reserve(_ context.Context, now time.Time, spacing time.Duration) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.last
	m.last = nextSlot(prev, now, spacing)
	return prev, nil
}

// Release resets the store to prev when slot is still the latest
// reservation. A newer reservation is left untouched.
func (m *Memory) Release(_ context.Context, slot, prev time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.last.Equal(slot) {
		m.last = prev
	}
	return nil
}

// Last returns the most recently reserved slot.
func (m *Memory) Last() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

func nextSlot(prev, now time.Time, spacing time.Duration) time.Time {
	if earliest := prev.Add(spacing); !prev.IsZero() && earliest.After(now) {
		return earliest
	}
	return now
}
