package models

import (
	"strings"
	"unicode"

	dErrors "pidreg/pkg/domain-errors"
)

func containsWhitespace(s string) bool {
	return strings.ContainsFunc(s, unicode.IsSpace)
}

// RegisterUserRequest reserves a namespace for a user.
type RegisterUserRequest struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

func (r *RegisterUserRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
}

// Follows validation order: Size -> Required -> Syntax.
func (r *RegisterUserRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if len(r.Name) > 255 {
		return dErrors.New(dErrors.CodeValidation, "name must be 255 characters or less")
	}
	if len(r.Namespace) > 255 {
		return dErrors.New(dErrors.CodeValidation, "namespace must be 255 characters or less")
	}

	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.Namespace == "" {
		return dErrors.New(dErrors.CodeValidation, "namespace is required")
	}

	if containsWhitespace(r.Namespace) {
		return dErrors.New(dErrors.CodeValidation, "namespace must not contain whitespace")
	}

	return nil
}

// RegisterAssetTypeRequest adds an asset category to the global catalog.
type RegisterAssetTypeRequest struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

func (r *RegisterAssetTypeRequest) Normalize() {
	if r == nil {
		return
	}
	r.Description = strings.TrimSpace(r.Description)
}

// Follows validation order: Size -> Required -> Syntax.
func (r *RegisterAssetTypeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if len(r.ID) > 255 {
		return dErrors.New(dErrors.CodeValidation, "asset type id must be 255 characters or less")
	}
	if len(r.Description) > 1000 {
		return dErrors.New(dErrors.CodeValidation, "description must be 1000 characters or less")
	}

	if r.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "asset type id is required")
	}

	if containsWhitespace(r.ID) {
		return dErrors.New(dErrors.CodeValidation, "asset type id must not contain whitespace")
	}

	return nil
}

// RegisterAssetRequest records one artifact for an owner. The local id is
// opaque to the registry and may be omitted entirely.
type RegisterAssetRequest struct {
	OwnerID     int64   `json:"owner_id"`
	AssetTypeID string  `json:"asset_type"`
	LocalID     *string `json:"local_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *RegisterAssetRequest) Normalize() {
	if r == nil {
		return
	}
	r.AssetTypeID = strings.TrimSpace(r.AssetTypeID)
}

// Follows validation order: Size -> Required.
func (r *RegisterAssetRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if r.LocalID != nil && len(*r.LocalID) > 1000 {
		return dErrors.New(dErrors.CodeValidation, "local id must be 1000 characters or less")
	}
	if r.Description != nil && len(*r.Description) > 1000 {
		return dErrors.New(dErrors.CodeValidation, "description must be 1000 characters or less")
	}

	if r.OwnerID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "owner_id is required")
	}
	if r.AssetTypeID == "" {
		return dErrors.New(dErrors.CodeValidation, "asset_type is required")
	}

	return nil
}
