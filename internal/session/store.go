package session

import (
	"context"
	"sync"
	"time"

	"users-table/internal/model"
)

// Store keeps session state between HTTP events.
type Store interface {
	Create(ctx context.Context, st State) error
	Get(ctx context.Context, id string) (State, error)
	// Update applies fn atomically and returns the stored result.
	Update(ctx context.Context, id string, fn func(*State) error) (State, error)
	Ping(ctx context.Context) error
	Close() error
}

type memoryEntry struct {
	state   State
	expires time.Time
}

// MemoryStore is a process-local Store with sliding TTL expiry.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryStore returns a MemoryStore. ttl<=0 disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) expiry() time.Time {
	if m.ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(m.ttl)
}

func (m *MemoryStore) live(e memoryEntry) bool {
	return e.expires.IsZero() || m.now().Before(e.expires)
}

func (m *MemoryStore) Create(_ context.Context, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if !m.live(e) {
			delete(m.entries, id)
		}
	}
	m.entries[st.ID] = memoryEntry{state: clone(st), expires: m.expiry()}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || !m.live(e) {
		return State{}, ErrNotFound
	}
	return clone(e.state), nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fn func(*State) error) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || !m.live(e) {
		delete(m.entries, id)
		return State{}, ErrNotFound
	}
	st := clone(e.state)
	if err := fn(&st); err != nil {
		return State{}, err
	}
	m.entries[id] = memoryEntry{state: clone(st), expires: m.expiry()}
	return st, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }

// Len reports the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// clone copies the user slice so callers never share backing arrays with
// the store.
func clone(st State) State {
	if st.Users != nil {
		users := make([]model.User, len(st.Users))
		copy(users, st.Users)
		st.Users = users
	}
	return st
}
