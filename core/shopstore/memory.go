package shopstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the shop config for the lifetime of the process.
type MemoryStore struct {
	mu  sync.Mutex
	cfg *ShopConfig
	now func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Get returns the stored config or ErrNotFound.
func (s *MemoryStore) Get(context.Context) (ShopConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg == nil {
		return ShopConfig{}, ErrNotFound
	}
	return *s.cfg, nil
}

// Seed stores cfg when the store is empty.
func (s *MemoryStore) Seed(_ context.Context, cfg ShopConfig) (ShopConfig, error) {
	if err := validate(cfg); err != nil {
		return ShopConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg == nil {
		cfg.ID = singletonID
		cfg.CreatedAt = s.now().UTC()
		s.cfg = &cfg
	}
	return *s.cfg, nil
}
