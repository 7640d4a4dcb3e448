package user

import (
	"context"
	"sync"

	"pidreg/internal/registry/models"
	"pidreg/pkg/platform/sentinel"
)

// InMemory is a map-backed user store for unit tests and dev mode. It
// enforces the same independent uniqueness of name and namespace as the
// Postgres schema.
type InMemory struct {
	mu          sync.RWMutex
	nextID      int64
	byID        map[int64]*models.User
	byName      map[string]int64
	byNamespace map[string]int64
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:        make(map[int64]*models.User),
		byName:      make(map[string]int64),
		byNamespace: make(map[string]int64),
	}
}

// Create assigns the next user identity and persists the record. Returns
// sentinel.ErrConflict when the name or the namespace is already taken.
func (s *InMemory) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[u.Name]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := s.byNamespace[u.Namespace]; exists {
		return sentinel.ErrConflict
	}

	s.nextID++
	u.ID = s.nextID
	stored := *u
	s.byID[u.ID] = &stored
	s.byName[u.Name] = u.ID
	s.byNamespace[u.Namespace] = u.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.byID[id]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	found := *u
	return &found, nil
}

func (s *InMemory) FindByNameAndNamespace(_ context.Context, name, namespace string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byName[name]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	u := s.byID[id]
	if u.Namespace != namespace {
		return nil, sentinel.ErrNotFound
	}
	found := *u
	return &found, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}
