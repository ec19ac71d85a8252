package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the gallery tables when missing. The store contract
// requires initialization to finish before any orchestrator or registry
// operation runs, so callers invoke this once at startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS gallery_images (
    id               TEXT PRIMARY KEY,
    batch_id         TEXT NOT NULL,
    url              TEXT NOT NULL,
    prompt           TEXT NOT NULL,
    aspect_ratio     TEXT NOT NULL,
    resolution       TEXT NOT NULL,
    created_at       TIMESTAMPTZ NOT NULL,
    style_id         TEXT NOT NULL DEFAULT 'none',
    reference_images TEXT[] NOT NULL DEFAULT '{}',
    is_favorite      BOOLEAN NOT NULL DEFAULT FALSE
);`,
		`
CREATE TABLE IF NOT EXISTS style_presets (
    id               TEXT PRIMARY KEY,
    name             TEXT NOT NULL,
    description      TEXT NOT NULL,
    icon             TEXT NOT NULL DEFAULT '',
    reference_images TEXT[] NOT NULL DEFAULT '{}'
);`,
		`
CREATE TABLE IF NOT EXISTS app_settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
