package assettype

import (
	"context"
	"sort"
	"sync"

	"pidreg/internal/registry/models"
	"pidreg/pkg/platform/sentinel"
)

// InMemory is a map-backed asset type catalog for unit tests and dev mode.
type InMemory struct {
	mu    sync.RWMutex
	types map[string]*models.AssetType
}

func NewInMemory() *InMemory {
	return &InMemory{types: make(map[string]*models.AssetType)}
}

// Create persists a new asset type. Returns sentinel.ErrConflict when the
// identifier is already registered, regardless of description.
func (s *InMemory) Create(_ context.Context, at *models.AssetType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.types[at.ID]; exists {
		return sentinel.ErrConflict
	}
	stored := *at
	s.types[at.ID] = &stored
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id string) (*models.AssetType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, exists := s.types[id]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	found := *at
	return &found, nil
}

// List returns all registered asset types in identifier order.
func (s *InMemory) List(_ context.Context) ([]*models.AssetType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.AssetType, 0, len(s.types))
	for _, at := range s.types {
		found := *at
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.types), nil
}
