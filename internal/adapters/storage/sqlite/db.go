package sqlite

import (
	"database/sql"
	"fmt"

	"bird-collector/internal/adapters/storage"
	"bird-collector/internal/adapters/storage/sqlrepo"

	_ "modernc.org/sqlite"
)

// Open abre (o crea) el archivo SQLite en path.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// un solo writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// NewRepos devuelve los repos SQL con placeholders "?".
func NewRepos(db *sql.DB) storage.Repos {
	return sqlrepo.NewRepos(db, sqlrepo.SQLite)
}
