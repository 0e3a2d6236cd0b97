// Package sqlite provides a SQLite-backed address repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/wherehaus/addressbook/internal/repository/sqlite/migrations"
	"github.com/wherehaus/addressbook/pkg/database"
)

// Open opens the SQLite address store at the given path and applies the
// embedded schema migrations.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	cfg := database.DefaultSQLiteConfig(path)

	db, err := database.OpenSQLite(ctx, &cfg)
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(ctx, db, migrations.FS, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
