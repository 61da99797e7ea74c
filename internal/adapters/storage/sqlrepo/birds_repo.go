package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"bird-collector/internal/domain/birds"
)

type BirdsRepo struct {
	base
}

const birdColumns = `id, owner_user_id, name, breed, description, age, created_at, updated_at`

func (r *BirdsRepo) Create(ctx context.Context, b birds.Bird) error {
	_, err := r.exec(ctx, r.db, `
		INSERT INTO birds (`+birdColumns+`)
		VALUES (?,?,?,?,?,?,?,?)
	`,
		b.ID,
		b.OwnerUserID,
		b.Name,
		b.Breed,
		b.Description,
		b.Age,
		b.CreatedAt.UTC(),
		b.UpdatedAt.UTC(),
	)
	return err
}

// Update no toca name ni owner_user_id.
func (r *BirdsRepo) Update(ctx context.Context, b birds.Bird) error {
	res, err := r.exec(ctx, r.db, `
		UPDATE birds
		SET
			breed = ?,
			description = ?,
			age = ?,
			updated_at = ?
		WHERE id = ?
	`,
		b.Breed,
		b.Description,
		b.Age,
		b.UpdatedAt.UTC(),
		b.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BirdsRepo) GetByID(ctx context.Context, id string) (birds.Bird, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return birds.Bird{}, ErrNotFound
	}

	row := r.queryRow(ctx, r.db, `SELECT `+birdColumns+` FROM birds WHERE id = ?`, id)
	b, err := scanBird(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return birds.Bird{}, ErrNotFound
		}
		return birds.Bird{}, err
	}
	return b, nil
}

func (r *BirdsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]birds.Bird, error) {
	rows, err := r.query(ctx, r.db, `
		SELECT `+birdColumns+`
		FROM birds
		WHERE owner_user_id = ?
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]birds.Bird, 0)
	for rows.Next() {
		b, err := scanBird(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Delete borra hijos y ave en una transacción.
func (r *BirdsRepo) Delete(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		for _, q := range []string{
			`DELETE FROM bird_toys WHERE bird_id = ?`,
			`DELETE FROM feedings WHERE bird_id = ?`,
			`DELETE FROM photos WHERE bird_id = ?`,
		} {
			if _, err := r.exec(ctx, tx, q, id); err != nil {
				return err
			}
		}
		res, err := r.exec(ctx, tx, `DELETE FROM birds WHERE id = ?`, id)
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

func (r *BirdsRepo) DeleteByOwner(ctx context.Context, ownerUserID string) (int, error) {
	var deleted int64
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		for _, q := range []string{
			`DELETE FROM bird_toys WHERE bird_id IN (SELECT id FROM birds WHERE owner_user_id = ?)`,
			`DELETE FROM feedings WHERE bird_id IN (SELECT id FROM birds WHERE owner_user_id = ?)`,
			`DELETE FROM photos WHERE bird_id IN (SELECT id FROM birds WHERE owner_user_id = ?)`,
		} {
			if _, err := r.exec(ctx, tx, q, ownerUserID); err != nil {
				return err
			}
		}
		res, err := r.exec(ctx, tx, `DELETE FROM birds WHERE owner_user_id = ?`, ownerUserID)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBird(s scanner) (birds.Bird, error) {
	var b birds.Bird
	err := s.Scan(
		&b.ID,
		&b.OwnerUserID,
		&b.Name,
		&b.Breed,
		&b.Description,
		&b.Age,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}
