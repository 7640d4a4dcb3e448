package service

import (
	"context"
	"errors"

	"pidreg/internal/platform/audit"
	"pidreg/internal/registry/models"
	dErrors "pidreg/pkg/domain-errors"
	"pidreg/pkg/platform/sentinel"
)

// RegisterAssetType adds a category to the global catalog. Idempotent on the
// exact (id, description) pair; the same id with a different description is
// a conflict, never an overwrite.
func (s *Service) RegisterAssetType(ctx context.Context, req *models.RegisterAssetTypeRequest) (*models.AssetType, bool, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := s.assetTypes.FindByID(ctx, req.ID)
	if err == nil {
		if existing.Description == req.Description {
			return existing, false, nil
		}
		return nil, false, dErrors.New(dErrors.CodeConflict, "asset type is already registered with a different description")
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up asset type")
	}

	at := &models.AssetType{ID: req.ID, Description: req.Description}
	if err := s.assetTypes.Create(ctx, at); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Lost an insert race; apply the same idempotency rules to the winner.
			if existing, lookupErr := s.assetTypes.FindByID(ctx, req.ID); lookupErr == nil {
				if existing.Description == req.Description {
					return existing, false, nil
				}
			}
			return nil, false, dErrors.New(dErrors.CodeConflict, "asset type is already registered with a different description")
		}
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create asset type")
	}

	s.logAudit(ctx, audit.ActionAssetTypeCreated, at.ID)
	if s.metrics != nil {
		s.metrics.IncrementAssetTypesRegistered()
	}
	return at, true, nil
}

// GetAssetType returns the catalog entry with the given identifier.
func (s *Service) GetAssetType(ctx context.Context, id string) (*models.AssetType, error) {
	if id == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "asset type id is required")
	}
	at, err := s.assetTypes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "asset type not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load asset type")
	}
	return at, nil
}

// ListAssetTypes returns the whole catalog in identifier order.
func (s *Service) ListAssetTypes(ctx context.Context) ([]*models.AssetType, error) {
	listed, err := s.assetTypes.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list asset types")
	}
	return listed, nil
}
