package service

import (
	"context"
	"errors"
	"time"

	"pidreg/internal/platform/audit"
	"pidreg/internal/registry/models"
	dErrors "pidreg/pkg/domain-errors"
	"pidreg/pkg/platform/sentinel"
)

// RegisterAsset records one artifact for an owner and returns it with its
// computed global identifier. Every call creates a new ledger row; identical
// registrations produce distinct assets with distinct sequence numbers.
func (s *Service) RegisterAsset(ctx context.Context, req *models.RegisterAssetRequest) (*models.AssetDetails, error) {
	if s.metrics != nil {
		defer s.metrics.ObserveRegisterAsset(time.Now())
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, req.OwnerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "owner user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load owner")
	}
	if _, err := s.assetTypes.FindByID(ctx, req.AssetTypeID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "asset type not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load asset type")
	}

	a := &models.Asset{
		OwnerID:     req.OwnerID,
		AssetTypeID: req.AssetTypeID,
		LocalID:     req.LocalID,
		Description: req.Description,
	}
	if err := s.assets.Create(ctx, a); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "owner or asset type no longer exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create asset")
	}

	details := &models.AssetDetails{Asset: a, GlobalID: a.GlobalID(owner.Namespace)}
	s.logAudit(ctx, audit.ActionAssetRegistered, details.GlobalID)
	if s.metrics != nil {
		s.metrics.IncrementAssetsRegistered()
	}
	return details, nil
}

// ResolveGlobalID finds the asset matching (owner, type, local id) exactly
// and returns its computed global identifier. Duplicate triples resolve to
// the lowest sequence number.
func (s *Service) ResolveGlobalID(ctx context.Context, ownerID int64, assetTypeID, localID string) (string, error) {
	if s.metrics != nil {
		defer s.metrics.ObserveResolve(time.Now())
	}

	if ownerID <= 0 {
		return "", dErrors.New(dErrors.CodeValidation, "owner_id is required")
	}
	if assetTypeID == "" {
		return "", dErrors.New(dErrors.CodeValidation, "asset_type is required")
	}
	if localID == "" {
		return "", dErrors.New(dErrors.CodeValidation, "local_id is required")
	}

	a, err := s.assets.FindByOwnerTypeLocal(ctx, ownerID, assetTypeID, localID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.countResolution("global", "miss")
			return "", dErrors.New(dErrors.CodeNotFound, "no global id found for the given parameters")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve global id")
	}

	owner, err := s.users.FindByID(ctx, a.OwnerID)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load owner for asset")
	}

	s.countResolution("global", "hit")
	return a.GlobalID(owner.Namespace), nil
}

// ResolveLocalID parses a global identifier and returns the local identifier
// recorded for that asset. An unknown id, a malformed id, and an asset
// registered without a local id are all reported the same way: there is no
// local id for this global id.
func (s *Service) ResolveLocalID(ctx context.Context, globalID string) (string, error) {
	if s.metrics != nil {
		defer s.metrics.ObserveResolve(time.Now())
	}

	noLocalID := func() error {
		s.countResolution("local", "miss")
		return dErrors.New(dErrors.CodeNotFound, "no local id found for the given global id")
	}

	gid, err := models.ParseGlobalID(globalID)
	if err != nil {
		return "", noLocalID()
	}

	a, err := s.assets.FindBySeq(ctx, gid.Seq)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", noLocalID()
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve local id")
	}

	owner, err := s.users.FindByID(ctx, a.OwnerID)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load owner for asset")
	}

	// The sequence number alone pins the asset; the namespace and type
	// segments must still agree with the current records.
	if owner.Namespace != gid.Namespace || a.AssetTypeID != gid.AssetTypeID {
		return "", noLocalID()
	}
	if a.LocalID == nil {
		return "", noLocalID()
	}

	s.countResolution("local", "hit")
	return *a.LocalID, nil
}

// ListAssetsForOwner returns all assets owned by the given user, each with
// its computed global identifier, in sequence order. An owner with no assets
// yields an empty sequence, whether or not the owner id was ever registered.
func (s *Service) ListAssetsForOwner(ctx context.Context, ownerID int64) ([]*models.AssetDetails, error) {
	if ownerID <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "owner_id is required")
	}

	listed, err := s.assets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list assets")
	}

	out := make([]*models.AssetDetails, 0, len(listed))
	if len(listed) == 0 {
		return out, nil
	}

	// The namespace is only needed to compose global ids; a non-empty list
	// guarantees the owner row exists via the ledger's reference.
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load owner for assets")
	}
	for _, a := range listed {
		out = append(out, &models.AssetDetails{Asset: a, GlobalID: a.GlobalID(owner.Namespace)})
	}
	return out, nil
}

func (s *Service) countResolution(direction, outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementResolution(direction, outcome)
	}
}
