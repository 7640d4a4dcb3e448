package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"pidreg/internal/registry/models"
	"pidreg/pkg/platform/sentinel"
)

type UserStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *UserStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestUserStoreSuite(t *testing.T) {
	suite.Run(t, new(UserStoreSuite))
}

// TestCreationAndLookups verifies identity assignment and retrieval.
func (s *UserStoreSuite) TestCreationAndLookups() {
	s.Run("assigns increasing identities", func() {
		u1 := &models.User{Name: "User ABC", Namespace: "abc"}
		u2 := &models.User{Name: "User DEF", Namespace: "def"}
		s.Require().NoError(s.store.Create(s.ctx, u1))
		s.Require().NoError(s.store.Create(s.ctx, u2))

		s.Equal(int64(1), u1.ID)
		s.Equal(int64(2), u2.ID)
	})

	s.Run("finds user by id", func() {
		found, err := s.store.FindByID(s.ctx, 1)
		s.Require().NoError(err)
		s.Equal("User ABC", found.Name)
		s.Equal("abc", found.Namespace)
	})

	s.Run("finds user by exact name and namespace pair", func() {
		found, err := s.store.FindByNameAndNamespace(s.ctx, "User ABC", "abc")
		s.Require().NoError(err)
		s.Equal(int64(1), found.ID)
	})

	s.Run("pair lookup misses on namespace mismatch", func() {
		_, err := s.store.FindByNameAndNamespace(s.ctx, "User ABC", "other")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.FindByID(s.ctx, 9000)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestUniqueness verifies name and namespace are independently unique.
func (s *UserStoreSuite) TestUniqueness() {
	s.Require().NoError(s.store.Create(s.ctx, &models.User{Name: "User ABC", Namespace: "abc"}))

	s.Run("rejects duplicate name with different namespace", func() {
		err := s.store.Create(s.ctx, &models.User{Name: "User ABC", Namespace: "xyz"})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("rejects duplicate namespace with different name", func() {
		err := s.store.Create(s.ctx, &models.User{Name: "Someone Else", Namespace: "abc"})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("rejected writes leave no rows behind", func() {
		count, err := s.store.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, count)
	})
}
