package registry

import (
	"log/slog"

	platformmetrics "pidreg/internal/platform/metrics"
	"pidreg/internal/registry/handler"
	"pidreg/internal/registry/service"
)

// Service exposes user, asset type, and asset registration plus identifier
// resolution.
type Service = service.Service

// Handler wires HTTP endpoints to the registry service.
type Handler = handler.Handler

// NewService constructs the registry service with required dependencies.
func NewService(users service.UserStore, assetTypes service.AssetTypeStore, assets service.AssetStore, opts ...service.Option) *Service {
	return service.New(users, assetTypes, assets, opts...)
}

// NewHandler constructs an HTTP handler for the registry routes.
func NewHandler(s *Service, logger *slog.Logger, m *platformmetrics.Metrics) *Handler {
	return handler.New(s, logger, m)
}
