package sqlite

import (
	"path/filepath"
	"testing"

	"bird-collector/internal/adapters/storage"
	"bird-collector/internal/adapters/storage/storagetest"

	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) storage.Repos {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "birds.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, MigrateUp(db))
	return NewRepos(db)
}

func TestRepos(t *testing.T) {
	storagetest.Run(t, openTemp)
}

func TestMigrateUp_Twice(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "birds.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, MigrateUp(db))
	require.NoError(t, MigrateUp(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN ('birds','toys','bird_toys','feedings','photos')`).Scan(&n))
	require.Equal(t, 5, n)
}
