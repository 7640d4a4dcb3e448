package store

import (
	"context"

	"pidreg/internal/registry/models"
	assettypestore "pidreg/internal/registry/store/assettype"
)

// SeedDefaultAssetTypes registers the canonical categories so a dev-mode
// registry is usable without manual catalog setup.
func SeedDefaultAssetTypes(ts *assettypestore.InMemory) {
	defaults := []*models.AssetType{
		{ID: "dataset", Description: "Data assets queryable through a platform endpoint"},
		{ID: "service", Description: "Services deployed on the platform"},
		{ID: "file", Description: "Data assets provided as downloadable file"},
	}
	for _, at := range defaults {
		_ = ts.Create(context.Background(), at)
	}
}
