package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and development.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string // browserID -> key -> value
}

// Compile-time check that *MemoryStore satisfies Store.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

// Get retrieves a value by browser and key.
func (s *MemoryStore) Get(_ context.Context, browserID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[browserID][key]
	return v, ok, nil
}

// Set stores a value.
func (s *MemoryStore) Set(_ context.Context, browserID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[browserID] == nil {
		s.data[browserID] = make(map[string]string)
	}
	s.data[browserID][key] = value
	return nil
}

// Delete removes a value. Absent keys are a no-op.
func (s *MemoryStore) Delete(_ context.Context, browserID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[browserID], key)
	return nil
}
