package usecase

import (
	"context"
	"sync"

	"upasana-backend/internal/domain"
)

// failingStore fails every load and save. The ledger must absorb these.
type failingStore struct {
	err error
}

func (s *failingStore) LoadCollection(context.Context, string) ([]domain.LineItem, error) {
	return nil, s.err
}

func (s *failingStore) SaveCollection(context.Context, string, []domain.LineItem) error {
	return s.err
}

// stubProducts serves products from a fixed map.
type stubProducts struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	err      error
	calls    int
}

func (s *stubProducts) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls += 1
	if s.err != nil {
		return nil, s.err
	}
	return s.products[id], nil
}

// stubOrders captures the draft it was asked to submit.
type stubOrders struct {
	mu        sync.Mutex
	placed    *domain.PlacedOrder
	err       error
	calls     int
	lastDraft domain.OrderDraft

	// When set, CreateOrder signals entered and blocks until release is
	// closed. Used to hold a checkout attempt in flight.
	entered chan struct{}
	release chan struct{}
}

func (s *stubOrders) CreateOrder(_ context.Context, draft domain.OrderDraft) (*domain.PlacedOrder, error) {
	s.mu.Lock()
	s.calls += 1
	s.lastDraft = draft
	entered, release := s.entered, s.release
	s.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
		<-release
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.placed, nil
}

func (s *stubOrders) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// stubAuth answers the auth check with a fixed verdict.
type stubAuth struct {
	authenticated bool
}

func (s stubAuth) IsAuthenticated(context.Context) bool {
	return s.authenticated
}
