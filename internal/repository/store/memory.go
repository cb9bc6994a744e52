package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps collections in process memory. Used by tests and the
// "memory" store driver.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Load returns a copy of the stored array.
func (s *MemoryStore) Load(_ context.Context, collection string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[collection]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), raw...), nil
}

// Save applies all writes under one lock.
func (s *MemoryStore) Save(_ context.Context, writes ...Write) error {
	for _, w := range writes {
		if w.Collection == "" {
			return fmt.Errorf("collection name must not be empty")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range writes {
		s.data[w.Collection] = append([]byte(nil), w.Data...)
	}
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close(context.Context) error {
	return nil
}
