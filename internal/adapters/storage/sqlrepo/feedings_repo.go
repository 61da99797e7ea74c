package sqlrepo

import (
	"context"
	"time"

	"bird-collector/internal/domain/feedings"
)

type FeedingsRepo struct {
	base
}

func (r *FeedingsRepo) Create(ctx context.Context, f feedings.Feeding) error {
	_, err := r.exec(ctx, r.db, `
		INSERT INTO feedings (id, bird_id, date, meal, created_at)
		VALUES (?,?,?,?,?)
	`, f.ID, f.BirdID, f.Date.UTC(), string(f.Meal), f.CreatedAt.UTC())
	return err
}

// seq desempata por orden de inserción.
func (r *FeedingsRepo) ListByBird(ctx context.Context, birdID string) ([]feedings.Feeding, error) {
	rows, err := r.query(ctx, r.db, `
		SELECT id, bird_id, date, meal, created_at
		FROM feedings
		WHERE bird_id = ?
		ORDER BY date DESC, seq ASC
	`, birdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feedings.Feeding, 0)
	for rows.Next() {
		var (
			f    feedings.Feeding
			meal string
			date time.Time
		)
		if err := rows.Scan(&f.ID, &f.BirdID, &date, &meal, &f.CreatedAt); err != nil {
			return nil, err
		}
		y, m, d := date.Date()
		f.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		f.Meal = feedings.Meal(meal)
		out = append(out, f)
	}
	return out, rows.Err()
}
