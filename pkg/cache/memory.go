package cache

import (
	"context"
	"sync"
	"sync/atomic"
)

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	saves atomic.Int64
}

// NewMemoryStore creates a store, optionally seeded with token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Load returns the held token.
func (s *MemoryStore) Load(_ context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Save replaces the held token.
func (s *MemoryStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.saves.Add(1)
	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryStore) Saves() int64 {
	return s.saves.Load()
}
