package memstore

import (
	"context"
	"sync"

	"upasana-backend/internal/domain"
)

// Store is an in-memory CollectionStore. It backs the session-only degraded
// mode when no database is configured, and doubles as a test fake.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]domain.LineItem
}

func New() *Store {
	return &Store{collections: make(map[string][]domain.LineItem)}
}

func (s *Store) LoadCollection(_ context.Context, key string) ([]domain.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.collections[key]
	if !ok {
		return nil, nil
	}
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out, nil
}

func (s *Store) SaveCollection(_ context.Context, key string, items []domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]domain.LineItem, len(items))
	copy(stored, items)
	s.collections[key] = stored
	return nil
}
