package sqlrepo

import (
	"context"

	"bird-collector/internal/domain/photos"
)

type PhotosRepo struct {
	base
}

func (r *PhotosRepo) Create(ctx context.Context, p photos.Photo) error {
	_, err := r.exec(ctx, r.db, `
		INSERT INTO photos (id, bird_id, url, created_at) VALUES (?,?,?,?)
	`, p.ID, p.BirdID, p.URL, p.CreatedAt.UTC())
	return err
}

func (r *PhotosRepo) ListByBird(ctx context.Context, birdID string) ([]photos.Photo, error) {
	rows, err := r.query(ctx, r.db, `
		SELECT id, bird_id, url, created_at
		FROM photos
		WHERE bird_id = ?
		ORDER BY seq ASC
	`, birdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]photos.Photo, 0)
	for rows.Next() {
		var p photos.Photo
		if err := rows.Scan(&p.ID, &p.BirdID, &p.URL, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
