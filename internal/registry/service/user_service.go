package service

import (
	"context"
	"errors"
	"strconv"

	"pidreg/internal/platform/audit"
	"pidreg/internal/registry/models"
	dErrors "pidreg/pkg/domain-errors"
	"pidreg/pkg/platform/sentinel"
)

// RegisterUser reserves a namespace for a user. The operation is idempotent
// on the exact (name, namespace) pair: re-registering returns the existing
// record with created=false and writes nothing. A name or namespace already
// taken by a different combination is a conflict.
func (s *Service) RegisterUser(ctx context.Context, req *models.RegisterUserRequest) (*models.User, bool, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := s.users.FindByNameAndNamespace(ctx, req.Name, req.Namespace)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	u := &models.User{Name: req.Name, Namespace: req.Namespace}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// A concurrent registration of the identical pair loses the
			// insert race but must still get the idempotent response.
			if existing, lookupErr := s.users.FindByNameAndNamespace(ctx, req.Name, req.Namespace); lookupErr == nil {
				return existing, false, nil
			}
			return nil, false, dErrors.New(dErrors.CodeConflict, "name or namespace is already registered to a different user")
		}
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.logAudit(ctx, audit.ActionUserCreated, strconv.FormatInt(u.ID, 10))
	if s.metrics != nil {
		s.metrics.IncrementUsersRegistered()
	}
	return u, true, nil
}

// GetUser returns the user with the given identity.
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "user id must be positive")
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return u, nil
}
