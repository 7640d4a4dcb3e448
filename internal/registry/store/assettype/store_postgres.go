package assettype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"pidreg/internal/registry/models"
	"pidreg/pkg/platform/sentinel"
)

// PostgresStore persists asset types in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, at *models.AssetType) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO asset_types (id, description) VALUES ($1, $2)`,
		at.ID, at.Description,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create asset type: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.AssetType, error) {
	at := &models.AssetType{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, description FROM asset_types WHERE id = $1`,
		id,
	).Scan(&at.ID, &at.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find asset type: %w", err)
	}
	return at, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.AssetType, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description FROM asset_types ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list asset types: %w", err)
	}
	defer rows.Close()

	var out []*models.AssetType
	for rows.Next() {
		at := &models.AssetType{}
		if err := rows.Scan(&at.ID, &at.Description); err != nil {
			return nil, fmt.Errorf("scan asset type: %w", err)
		}
		out = append(out, at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list asset types: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM asset_types`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count asset types: %w", err)
	}
	return count, nil
}
