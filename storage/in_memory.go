package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/hupe1980/strapikit/core"
)

// InMemoryStore is a trivial in-process Storage implementation useful for
// tests, examples and single-process prototypes. Values are copied on write
// and on read to avoid accidental external mutation of internal buffers.
//
// Nothing survives a restart; prefer FileStore or the s3 package when the
// session must be durable.
type InMemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

var _ core.Storage = (*InMemoryStore)(nil)

// NewInMemoryStore returns an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{values: make(map[string][]byte)}
}

// Get returns a copy of the stored value or core.ErrNotFound.
func (s *InMemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.values[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Set stores (or overwrites) the value for key. The input slice is copied.
func (s *InMemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	s.values[key] = cp
	return nil
}

// Delete removes the key if present.
func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Keys returns the stored keys in sorted order. The slice is a snapshot and
// safe for caller mutation.
func (s *InMemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
