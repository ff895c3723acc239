package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrSnapshotUnsupported is returned by Snapshot on stores that are backed
// up outside the process.
var ErrSnapshotUnsupported = errors.New("snapshot not supported for this store")

// Optimize refreshes planner statistics.
func Optimize(ctx context.Context, db *sql.DB) error {
	stmt := "PRAGMA optimize"
	if DialectOf(db) == DialectPostgres {
		stmt = "ANALYZE"
	}
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("optimize: %w", err)
	}
	return nil
}

// Snapshot writes a consistent copy of the sqlite database to dest. dest
// must not exist yet.
func Snapshot(ctx context.Context, db *sql.DB, dest string) error {
	if DialectOf(db) == DialectPostgres {
		return ErrSnapshotUnsupported
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("snapshot %s already exists", dest)
	}
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		return fmt.Errorf("vacuum into %s: %w", dest, err)
	}
	return nil
}
