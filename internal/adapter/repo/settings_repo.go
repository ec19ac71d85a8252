package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepositoryPG implements domain.SettingsStore on PostgreSQL.
type SettingsRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a key-value settings repository.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepositoryPG {
	return &SettingsRepositoryPG{pool: pool}
}

// Get returns the stored value, or "" when the key has never been set.
func (r *SettingsRepositoryPG) Get(ctx context.Context, key string) (string, error) {
	row := r.pool.QueryRow(ctx, `SELECT value FROM app_settings WHERE key = $1;`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Set stores the value, replacing any previous one.
func (r *SettingsRepositoryPG) Set(ctx context.Context, key, value string) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO app_settings (key, value)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;
`, key, value)
	return err
}
