package sqlrepo

import (
	"context"
	"database/sql"
	"errors"

	"bird-collector/internal/domain/toys"
)

type ToysRepo struct {
	base
}

func (r *ToysRepo) Create(ctx context.Context, t toys.Toy) error {
	_, err := r.exec(ctx, r.db, `
		INSERT INTO toys (id, name, color, created_at, updated_at)
		VALUES (?,?,?,?,?)
	`, t.ID, t.Name, t.Color, t.CreatedAt.UTC(), t.UpdatedAt.UTC())
	return err
}

func (r *ToysRepo) Update(ctx context.Context, t toys.Toy) error {
	res, err := r.exec(ctx, r.db, `
		UPDATE toys SET name = ?, color = ?, updated_at = ? WHERE id = ?
	`, t.Name, t.Color, t.UpdatedAt.UTC(), t.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ToysRepo) GetByID(ctx context.Context, id string) (toys.Toy, error) {
	var t toys.Toy
	err := r.queryRow(ctx, r.db, `
		SELECT id, name, color, created_at, updated_at FROM toys WHERE id = ?
	`, id).Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return toys.Toy{}, ErrNotFound
		}
		return toys.Toy{}, err
	}
	return t, nil
}

func (r *ToysRepo) List(ctx context.Context) ([]toys.Toy, error) {
	return r.list(ctx, `
		SELECT id, name, color, created_at, updated_at
		FROM toys
		ORDER BY created_at ASC, id ASC
	`)
}

// ListByIDs respeta el orden de ids y omite los que no existen.
func (r *ToysRepo) ListByIDs(ctx context.Context, ids []string) ([]toys.Toy, error) {
	if len(ids) == 0 {
		return []toys.Toy{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	found, err := r.list(ctx, `
		SELECT id, name, color, created_at, updated_at
		FROM toys
		WHERE id IN (`+placeholders(len(ids))+`)
	`, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]toys.Toy, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}
	out := make([]toys.Toy, 0, len(found))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
			delete(byID, id)
		}
	}
	return out, nil
}

func (r *ToysRepo) list(ctx context.Context, q string, args ...any) ([]toys.Toy, error) {
	rows, err := r.query(ctx, r.db, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]toys.Toy, 0)
	for rows.Next() {
		var t toys.Toy
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete quita el toy y sus asociaciones; las aves quedan intactas.
func (r *ToysRepo) Delete(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := r.exec(ctx, tx, `DELETE FROM bird_toys WHERE toy_id = ?`, id); err != nil {
			return err
		}
		res, err := r.exec(ctx, tx, `DELETE FROM toys WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}
