package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "migrate_test.db")
	cfg := DefaultSQLiteConfig(path)
	db, err := OpenSQLite(context.Background(), &cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations_AppliesInOrder(t *testing.T) {
	db := openTestDB(t)
	migrations := fstest.MapFS{
		"0001_create.sql": {Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT);")},
		"0002_index.sql":  {Data: []byte("CREATE INDEX idx_items_name ON items (name);")},
	}

	require.NoError(t, RunMigrations(context.Background(), db, migrations, nil))

	_, err := db.ExecContext(context.Background(), "INSERT INTO items (name) VALUES ('first')")
	require.NoError(t, err)

	var applied int
	require.NoError(t, db.QueryRowContext(context.Background(),
		"SELECT COUNT(1) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openTestDB(t)
	migrations := fstest.MapFS{
		"0001_create.sql": {Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY);")},
	}

	require.NoError(t, RunMigrations(context.Background(), db, migrations, nil))
	// A second run must skip the already applied file; re-executing the
	// CREATE TABLE would fail.
	require.NoError(t, RunMigrations(context.Background(), db, migrations, nil))
}

func TestRunMigrations_InvalidSQLRollsBack(t *testing.T) {
	db := openTestDB(t)
	migrations := fstest.MapFS{
		"0001_broken.sql": {Data: []byte("CREATE TABEL broken (id INTEGER);")},
	}

	err := RunMigrations(context.Background(), db, migrations, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "0001_broken.sql")

	var applied int
	require.NoError(t, db.QueryRowContext(context.Background(),
		"SELECT COUNT(1) FROM schema_migrations").Scan(&applied))
	assert.Zero(t, applied)
}

func TestRunMigrations_SkipsNonSQLAndEmptyFiles(t *testing.T) {
	db := openTestDB(t)
	migrations := fstest.MapFS{
		"0001_create.sql": {Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY);")},
		"0002_empty.sql":  {Data: []byte("  \n")},
		"README.md":       {Data: []byte("not a migration")},
	}

	require.NoError(t, RunMigrations(context.Background(), db, migrations, nil))

	var applied int
	require.NoError(t, db.QueryRowContext(context.Background(),
		"SELECT COUNT(1) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestRunMigrations_NilDB(t *testing.T) {
	err := RunMigrations(context.Background(), nil, fstest.MapFS{}, nil)
	assert.ErrorContains(t, err, "sql db is required")
}
