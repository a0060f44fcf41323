package ratelimit

import (
	"context"
	"sync"
)

// Store holds per-client request timestamps in milliseconds since epoch.
// *store.RateWindowRepo satisfies it for SQLite-backed windows.
type Store interface {
	// Window returns clientID's timestamps in ascending order.
	Window(ctx context.Context, clientID string) ([]int64, error)
	// SetWindow replaces clientID's timestamps. An empty window removes
	// the client.
	SetWindow(ctx context.Context, clientID string, window []int64) error
	// Expire drops every timestamp at or before cutoff and returns how
	// many were removed.
	Expire(ctx context.Context, cutoff int64) (int, error)
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string][]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string][]int64)}
}

func (m *MemoryStore) Window(_ context.Context, clientID string) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := m.windows[clientID]
	if len(w) == 0 {
		return nil, nil
	}
	out := make([]int64, len(w))
	copy(out, w)
	return out, nil
}

func (m *MemoryStore) SetWindow(_ context.Context, clientID string, window []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(window) == 0 {
		delete(m.windows, clientID)
		return nil
	}
	w := make([]int64, len(window))
	copy(w, window)
	m.windows[clientID] = w
	return nil
}

func (m *MemoryStore) Expire(_ context.Context, cutoff int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, w := range m.windows {
		kept := w[:0]
		for _, ts := range w {
			if ts > cutoff {
				kept = append(kept, ts)
			}
		}
		removed += len(w) - len(kept)
		if len(kept) == 0 {
			delete(m.windows, id)
			continue
		}
		m.windows[id] = kept
	}
	return removed, nil
}

// Clients returns the number of tracked clients.
func (m *MemoryStore) Clients() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}
