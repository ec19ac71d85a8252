package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/songofhawk/Giga-Peach/internal/domain"
)

// PresetRepositoryPG implements domain.PresetStore on PostgreSQL.
type PresetRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPresetRepository creates a preset repository backed by PostgreSQL.
func NewPresetRepository(pool *pgxpool.Pool) *PresetRepositoryPG {
	return &PresetRepositoryPG{pool: pool}
}

// UpsertPreset inserts the preset or fully replaces the row with the same id.
func (r *PresetRepositoryPG) UpsertPreset(ctx context.Context, preset domain.StylePreset) error {
	query := `
INSERT INTO style_presets (id, name, description, icon, reference_images)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
    name             = EXCLUDED.name,
    description      = EXCLUDED.description,
    icon             = EXCLUDED.icon,
    reference_images = EXCLUDED.reference_images;
`
	_, err := r.pool.Exec(ctx, query,
		preset.ID,
		preset.Name,
		preset.Description,
		preset.Icon,
		refsOrEmpty(preset.ReferenceImages),
	)
	return err
}

// ListPresets returns every stored preset, sentinel first, then by name.
func (r *PresetRepositoryPG) ListPresets(ctx context.Context) ([]domain.StylePreset, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, description, icon, reference_images
FROM style_presets
ORDER BY (id <> 'none'), name ASC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []domain.StylePreset
	for rows.Next() {
		var preset domain.StylePreset
		if err := rows.Scan(&preset.ID, &preset.Name, &preset.Description, &preset.Icon, &preset.ReferenceImages); err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return presets, nil
}

// DeletePreset removes the preset; deleting an absent id is a no-op.
func (r *PresetRepositoryPG) DeletePreset(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM style_presets WHERE id = $1;`, id)
	return err
}
