package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"pidreg/internal/registry/models"
	"pidreg/pkg/platform/sentinel"
)

// PostgresStore persists assets in PostgreSQL. The BIGSERIAL primary key is
// the sequence-number source, so assignment is linearizable across all
// concurrent registrations sharing the store.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, a *models.Asset) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO assets (owner_id, asset_type, local_id, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		a.OwnerID, a.AssetTypeID, nullString(a.LocalID), nullString(a.Description),
	).Scan(&a.ID)
	if err != nil {
		var pqErr *pq.Error
		// foreign_key_violation: referenced owner or asset type is gone.
		// The service pre-checks both, so this only fires on a delete race.
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("create asset: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindBySeq(ctx context.Context, seq int64) (*models.Asset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, asset_type, local_id, description
		 FROM assets WHERE id = $1`,
		seq,
	)
	return scanAsset(row)
}

// FindByOwnerTypeLocal returns the asset matching all three fields exactly.
// Duplicate triples resolve to the lowest sequence number.
func (s *PostgresStore) FindByOwnerTypeLocal(ctx context.Context, ownerID int64, assetTypeID, localID string) (*models.Asset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, asset_type, local_id, description
		 FROM assets
		 WHERE owner_id = $1 AND asset_type = $2 AND local_id = $3
		 ORDER BY id
		 LIMIT 1`,
		ownerID, assetTypeID, localID,
	)
	return scanAsset(row)
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Asset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, asset_type, local_id, description
		 FROM assets WHERE owner_id = $1 ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list assets by owner: %w", err)
	}
	defer rows.Close()

	var out []*models.Asset
	for rows.Next() {
		a := &models.Asset{}
		var localID, description sql.NullString
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.AssetTypeID, &localID, &description); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		a.LocalID = fromNullString(localID)
		a.Description = fromNullString(description)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assets by owner: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count assets: %w", err)
	}
	return count, nil
}

func scanAsset(row *sql.Row) (*models.Asset, error) {
	a := &models.Asset{}
	var localID, description sql.NullString
	err := row.Scan(&a.ID, &a.OwnerID, &a.AssetTypeID, &localID, &description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan asset: %w", err)
	}
	a.LocalID = fromNullString(localID)
	a.Description = fromNullString(description)
	return a, nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func fromNullString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}
