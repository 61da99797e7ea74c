// Package sqlrepo implementa los repos sobre database/sql con SQL escrito a mano.
// Las queries usan "?" y se reescriben según el Dialect (Postgres usa $n).
package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"bird-collector/internal/adapters/storage"
	"bird-collector/internal/platform/apperr"
)

var (
	ErrNotFound = apperr.ErrNotFound
)

type Dialect struct {
	Name        string
	placeholder func(n int) string
}

var (
	Postgres = Dialect{Name: "postgres", placeholder: func(n int) string { return "$" + strconv.Itoa(n) }}
	SQLite   = Dialect{Name: "sqlite", placeholder: func(int) string { return "?" }}
)

// Rebind reemplaza cada "?" por el placeholder del dialecto.
func (d Dialect) Rebind(q string) string {
	if d.placeholder == nil {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString(d.placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// conn es lo común entre *sql.DB y *sql.Tx.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type base struct {
	db *sql.DB
	d  Dialect
}

func (b base) exec(ctx context.Context, c conn, q string, args ...any) (sql.Result, error) {
	return c.ExecContext(ctx, b.d.Rebind(q), args...)
}

func (b base) query(ctx context.Context, c conn, q string, args ...any) (*sql.Rows, error) {
	return c.QueryContext(ctx, b.d.Rebind(q), args...)
}

func (b base) queryRow(ctx context.Context, c conn, q string, args ...any) *sql.Row {
	return c.QueryRowContext(ctx, b.d.Rebind(q), args...)
}

// inTx corre fn en una transacción; rollback si fn falla.
func (b base) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// NewRepos arma todos los repos sobre db.
func NewRepos(db *sql.DB, d Dialect) storage.Repos {
	b := base{db: db, d: d}
	return storage.Repos{
		Birds:    &BirdsRepo{base: b},
		Toys:     &ToysRepo{base: b},
		Links:    &LinksRepo{base: b},
		Feedings: &FeedingsRepo{base: b},
		Photos:   &PhotosRepo{base: b},
	}
}
