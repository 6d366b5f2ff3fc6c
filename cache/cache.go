// Package cache provides the shared content-cache service handed to engine
// factories. It is a process-scoped service with an explicit lifecycle:
// created once by the embedding application, passed to the factory, and
// closed on teardown.
package cache

import (
	"context"
	"sync"
)

// Store caches fetched content so engines constructed by the same factory can
// share it across slots.
type Store interface {
	// Get returns the cached bytes for key and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Close releases the store's resources. The store is unusable afterwards.
	Close() error
}

// MemoryStore is the default in-process Store. Entries are evicted in
// insertion order once maxEntries is exceeded.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string][]byte
	order      []string
	maxEntries int
	closed     bool
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMaxEntries bounds how many entries the store retains. Zero or negative
// means unbounded.
func WithMaxEntries(n int) MemoryOption {
	return func(s *MemoryStore) { s.maxEntries = n }
}

// NewMemoryStore creates an in-memory content cache.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, nil
	}
	data, ok := s.entries[key]
	return data, ok, nil
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if _, exists := s.entries[key]; !exists {
		s.order = append(s.order, key)
	}
	s.entries[key] = data

	for s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
	}
	return nil
}

// Close implements Store. Subsequent Get and Put calls are no-ops.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.entries = nil
	s.order = nil
	return nil
}
