package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/songofhawk/Giga-Peach/internal/domain"
)

// GalleryRepositoryPG implements domain.GalleryStore on PostgreSQL.
type GalleryRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewGalleryRepository creates a gallery repository backed by PostgreSQL.
func NewGalleryRepository(pool *pgxpool.Pool) *GalleryRepositoryPG {
	return &GalleryRepositoryPG{pool: pool}
}

// UpsertImage inserts the record or fully replaces the row with the same id.
func (r *GalleryRepositoryPG) UpsertImage(ctx context.Context, img domain.GeneratedImage) error {
	query := `
INSERT INTO gallery_images (id, batch_id, url, prompt, aspect_ratio, resolution, created_at, style_id, reference_images, is_favorite)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
    batch_id         = EXCLUDED.batch_id,
    url              = EXCLUDED.url,
    prompt           = EXCLUDED.prompt,
    aspect_ratio     = EXCLUDED.aspect_ratio,
    resolution       = EXCLUDED.resolution,
    created_at       = EXCLUDED.created_at,
    style_id         = EXCLUDED.style_id,
    reference_images = EXCLUDED.reference_images,
    is_favorite      = EXCLUDED.is_favorite;
`
	_, err := r.pool.Exec(ctx, query,
		img.ID,
		img.BatchID,
		img.URL,
		img.Prompt,
		img.AspectRatio,
		img.Resolution,
		img.Timestamp,
		img.StyleID,
		refsOrEmpty(img.ReferenceImages),
		img.IsFavorite,
	)
	return err
}

// ListImages returns every record in insertion order (created_at, id).
func (r *GalleryRepositoryPG) ListImages(ctx context.Context) ([]domain.GeneratedImage, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, batch_id, url, prompt, aspect_ratio, resolution, created_at, style_id, reference_images, is_favorite
FROM gallery_images
ORDER BY created_at ASC, id ASC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.GeneratedImage
	for rows.Next() {
		var img domain.GeneratedImage
		if err := rows.Scan(
			&img.ID,
			&img.BatchID,
			&img.URL,
			&img.Prompt,
			&img.AspectRatio,
			&img.Resolution,
			&img.Timestamp,
			&img.StyleID,
			&img.ReferenceImages,
			&img.IsFavorite,
		); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return images, nil
}

// DeleteImage removes the record; deleting an absent id is a no-op.
func (r *GalleryRepositoryPG) DeleteImage(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM gallery_images WHERE id = $1;`, id)
	return err
}

func refsOrEmpty(refs []string) []string {
	if refs == nil {
		return []string{}
	}
	return refs
}
