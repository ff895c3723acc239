// Package appbootstrap wires configuration, the record store and the HTTP
// server into a runnable process.
package appbootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"hospital-portal/api"
	"hospital-portal/config"
	"hospital-portal/core/store"
	"hospital-portal/core/utils"
)

// NewLogger builds the process logger from cfg.
func NewLogger(cfg *config.AppConfig) (*utils.Logger, error) {
	return utils.NewLoggerWith(os.Stderr, cfg.LogLevel, cfg.LogFormat)
}

// OpenStore connects, migrates and, when seed is set, fills an empty FAQ
// table. The caller owns the returned handle.
func OpenStore(ctx context.Context, cfg *config.AppConfig, logger *utils.Logger, seed bool) (*sql.DB, error) {
	db, err := store.NewDB(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := store.ApplyMigrations(ctx, db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if seed {
		if _, err := store.SeedFAQs(ctx, db, logger); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	return db, nil
}

// NewServer composes the server on an already opened store.
func NewServer(cfg *config.AppConfig, db *sql.DB, logger *utils.Logger) (*api.Server, error) {
	rc, err := composeRuntime(cfg, db, logger)
	if err != nil {
		return nil, err
	}
	return api.NewServer(cfg, rc.serverDeps, logger), nil
}

// Run opens the store and serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.AppConfig, logger *utils.Logger) error {
	db, err := OpenStore(ctx, cfg, logger, cfg.SeedOnStart)
	if err != nil {
		return err
	}
	defer db.Close()

	srv, err := NewServer(cfg, db, logger)
	if err != nil {
		return err
	}
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Printf("server stopped")
	return nil
}
