package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema is the registry's persisted layout: three related tables with the
// uniqueness and referential constraints the domain invariants rely on. The
// global identifier is never stored; it is derived at read time.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id        BIGSERIAL PRIMARY KEY,
	name      TEXT NOT NULL UNIQUE,
	namespace TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS asset_types (
	id          TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS assets (
	id          BIGSERIAL PRIMARY KEY,
	owner_id    BIGINT NOT NULL REFERENCES users (id),
	asset_type  TEXT NOT NULL REFERENCES asset_types (id),
	local_id    TEXT,
	description TEXT
);

CREATE INDEX IF NOT EXISTS idx_assets_owner ON assets (owner_id);
CREATE INDEX IF NOT EXISTS idx_assets_triple ON assets (owner_id, asset_type, local_id);
`

// EnsureSchema creates the registry tables if they do not exist yet. Run at
// startup; a no-op on an already provisioned database.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure registry schema: %w", err)
	}
	return nil
}
