package service

import (
	"context"
	"log/slog"
	"time"

	"pidreg/internal/platform/audit"
	"pidreg/internal/platform/middleware"
	"pidreg/internal/registry/metrics"
	"pidreg/internal/registry/models"
)

// UserStore owns the user → namespace mapping.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByNameAndNamespace(ctx context.Context, name, namespace string) (*models.User, error)
}

// AssetTypeStore owns the global catalog of asset categories.
type AssetTypeStore interface {
	Create(ctx context.Context, at *models.AssetType) error
	FindByID(ctx context.Context, id string) (*models.AssetType, error)
	List(ctx context.Context) ([]*models.AssetType, error)
}

// AssetStore owns asset records and sequence-number assignment.
type AssetStore interface {
	Create(ctx context.Context, a *models.Asset) error
	FindBySeq(ctx context.Context, seq int64) (*models.Asset, error)
	FindByOwnerTypeLocal(ctx context.Context, ownerID int64, assetTypeID, localID string) (*models.Asset, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Asset, error)
}

// Service orchestrates namespace registration, the asset type catalog, the
// asset ledger, and identifier resolution. It holds no state of its own;
// every operation is a read or write against the stores.
type Service struct {
	users          UserStore
	assetTypes     AssetTypeStore
	assets         AssetStore
	logger         *slog.Logger
	auditPublisher audit.Publisher
	metrics        *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(users UserStore, assetTypes AssetTypeStore, assets AssetStore, opts ...Option) *Service {
	s := &Service{users: users, assetTypes: assetTypes, assets: assets}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// logAudit records a registration event. The log record always lands; the
// external publisher is best-effort and its failures never fail the
// registration itself.
func (s *Service) logAudit(ctx context.Context, action, subject string) {
	requestID := middleware.GetRequestID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, action,
			"event", action,
			"subject", subject,
			"request_id", requestID,
			"log_type", "audit",
		)
	}
	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Timestamp: time.Now(),
		Action:    action,
		Subject:   subject,
		RequestID: requestID,
	})
	if err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit publish failed",
			"event", action,
			"error", err.Error(),
			"request_id", requestID,
		)
	}
}
