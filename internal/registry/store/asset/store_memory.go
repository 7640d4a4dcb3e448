package asset

import (
	"context"
	"sync"

	"pidreg/internal/registry/models"
	"pidreg/pkg/platform/sentinel"
)

// InMemory is a map-backed asset ledger for unit tests and dev mode. The
// sequence counter is guarded by the store mutex so concurrent registrations
// never observe the same sequence number.
type InMemory struct {
	mu      sync.RWMutex
	nextSeq int64
	bySeq   map[int64]*models.Asset
	order   []int64
}

func NewInMemory() *InMemory {
	return &InMemory{bySeq: make(map[int64]*models.Asset)}
}

// Create assigns the next sequence number and persists the record. Every
// call creates a new row; registration is deliberately not idempotent.
func (s *InMemory) Create(_ context.Context, a *models.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	a.ID = s.nextSeq
	stored := *a
	s.bySeq[a.ID] = &stored
	s.order = append(s.order, a.ID)
	return nil
}

func (s *InMemory) FindBySeq(_ context.Context, seq int64) (*models.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.bySeq[seq]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	found := *a
	return &found, nil
}

// FindByOwnerTypeLocal returns the asset matching all three fields exactly.
// Duplicate triples resolve to the lowest sequence number.
func (s *InMemory) FindByOwnerTypeLocal(_ context.Context, ownerID int64, assetTypeID, localID string) (*models.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, seq := range s.order {
		a := s.bySeq[seq]
		if a.OwnerID == ownerID && a.AssetTypeID == assetTypeID && a.LocalID != nil && *a.LocalID == localID {
			found := *a
			return &found, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// ListByOwner returns all assets owned by the given user in sequence order.
func (s *InMemory) ListByOwner(_ context.Context, ownerID int64) ([]*models.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Asset
	for _, seq := range s.order {
		a := s.bySeq[seq]
		if a.OwnerID == ownerID {
			found := *a
			out = append(out, &found)
		}
	}
	return out, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bySeq), nil
}
