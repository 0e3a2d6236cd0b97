package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteConfig holds SQLite connection configuration.
type SQLiteConfig struct {
	// Path is the database file location. ":memory:" opens an in-memory
	// database, useful in tests.
	Path string

	BusyTimeout     time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultSQLiteConfig returns sensible defaults for a file-backed database.
func DefaultSQLiteConfig(path string) SQLiteConfig {
	return SQLiteConfig{
		Path:            path,
		BusyTimeout:     5 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	}
}

// DSN returns the SQLite connection string with WAL journaling and a busy
// timeout so concurrent request handlers queue on the write lock instead of
// failing immediately.
func (c *SQLiteConfig) DSN() string {
	path := c.Path
	if path != ":memory:" {
		path = filepath.Clean(path)
	}
	return fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=%d&_synchronous=NORMAL",
		path, c.BusyTimeout.Milliseconds())
}

// OpenSQLite opens a SQLite database handle and verifies connectivity.
func OpenSQLite(ctx context.Context, cfg *SQLiteConfig) (*sql.DB, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sql.Open("sqlite", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return db, nil
}
