package sqlrepo

import "context"

type LinksRepo struct {
	base
}

// Link es idempotente gracias al UNIQUE (bird_id, toy_id).
func (r *LinksRepo) Link(ctx context.Context, birdID, toyID string) error {
	_, err := r.exec(ctx, r.db, `
		INSERT INTO bird_toys (bird_id, toy_id)
		VALUES (?, ?)
		ON CONFLICT (bird_id, toy_id) DO NOTHING
	`, birdID, toyID)
	return err
}

func (r *LinksRepo) Unlink(ctx context.Context, birdID, toyID string) error {
	_, err := r.exec(ctx, r.db, `DELETE FROM bird_toys WHERE bird_id = ? AND toy_id = ?`, birdID, toyID)
	return err
}

func (r *LinksRepo) ToyIDsForBird(ctx context.Context, birdID string) ([]string, error) {
	rows, err := r.query(ctx, r.db, `
		SELECT toy_id FROM bird_toys WHERE bird_id = ? ORDER BY seq ASC
	`, birdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
