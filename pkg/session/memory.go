package session

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps sessions in process memory. It backs dev mode and tests;
// state is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

// Get returns a deep copy of the stored session, or ErrNotFound.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	raw, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save stores a serialized copy so later mutations of s don't leak in.
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.sessions[s.ID] = raw
	m.mu.Unlock()
	return nil
}

// Stats aggregates over every stored session.
func (m *MemoryStore) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var st Stats
	for _, raw := range m.sessions {
		var s Session
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		st.TotalSessions++
		if s.Status == StatusActive {
			st.ActiveSessions++
		}
		if s.ScamDetected {
			st.ScamsDetected++
		}
		st.IntelItems += s.Intelligence.TotalItems()
	}
	return st, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }
