package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"hospital-portal/core/utils"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrationsFS embed.FS

// incidentTypeDefault backfills rows written before incident_type existed.
const incidentTypeDefault = "その他"

func newMigrationProvider(db *sql.DB) (*goose.Provider, error) {
	dialect := DialectOf(db)
	gooseDialect := goose.DialectSQLite3
	dir := "migrations/sqlite"
	if dialect == DialectPostgres {
		gooseDialect = goose.DialectPostgres
		dir = "migrations/postgres"
	}
	sub, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(gooseDialect, db, sub,
		goose.WithGoMigrations(addIncidentTypeMigration(dialect)),
	)
}

func ApplyMigrations(ctx context.Context, db *sql.DB, logger *utils.Logger) error {
	provider, err := newMigrationProvider(db)
	if err != nil {
		return fmt.Errorf("migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, res := range results {
		if res == nil || res.Source == nil {
			continue
		}
		logger.Printf("migration %05d applied in %s", res.Source.Version, res.Duration)
	}
	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("schema version: %w", err)
	}
	logger.Debugf("schema at version %d", version)
	return nil
}

func SchemaVersion(ctx context.Context, db *sql.DB) (int64, error) {
	provider, err := newMigrationProvider(db)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}

// addIncidentTypeMigration adds incident_type only where the column is absent,
// so stores that were patched by hand before versioning still migrate cleanly.
func addIncidentTypeMigration(dialect Dialect) *goose.Migration {
	up := &goose.GoFunc{RunTx: func(ctx context.Context, tx *sql.Tx) error {
		exists, err := columnExists(ctx, tx, dialect, "incident_reports", "incident_type")
		if err != nil {
			return err
		}
		if !exists {
			if _, err := tx.ExecContext(ctx, `ALTER TABLE incident_reports ADD COLUMN incident_type TEXT`); err != nil {
				return fmt.Errorf("add incident_type: %w", err)
			}
		}
		_, err = tx.ExecContext(ctx, dialect.rebind(`UPDATE incident_reports SET incident_type=? WHERE incident_type IS NULL`), incidentTypeDefault)
		return err
	}}
	return goose.NewGoMigration(2, up, nil)
}

type ColumnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"not_null"`
	PrimaryKey bool   `json:"primary_key"`
}

func tableColumns(ctx context.Context, q querier, dialect Dialect, table string) ([]ColumnInfo, error) {
	var out []ColumnInfo
	if dialect == DialectPostgres {
		rows, err := q.QueryContext(ctx, `
			SELECT c.column_name, c.data_type, c.is_nullable = 'NO',
				EXISTS (
					SELECT 1 FROM information_schema.table_constraints tc
					JOIN information_schema.key_column_usage k ON k.constraint_name = tc.constraint_name
					WHERE tc.table_name = c.table_name AND tc.constraint_type = 'PRIMARY KEY' AND k.column_name = c.column_name
				)
			FROM information_schema.columns c
			WHERE c.table_schema = current_schema() AND c.table_name = $1
			ORDER BY c.ordinal_position`, table)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		for rows.Next() {
			var col ColumnInfo
			if err := rows.Scan(&col.Name, &col.Type, &col.NotNull, &col.PrimaryKey); err != nil {
				return nil, err
			}
			out = append(out, col)
		}
		return out, rows.Err()
	}
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull int
		var dflt interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		out = append(out, ColumnInfo{Name: name, Type: ctype, NotNull: notnull == 1, PrimaryKey: pk > 0})
	}
	return out, rows.Err()
}

func columnExists(ctx context.Context, q querier, dialect Dialect, table, column string) (bool, error) {
	cols, err := tableColumns(ctx, q, dialect, table)
	if err != nil {
		return false, err
	}
	for _, col := range cols {
		if col.Name == column {
			return true, nil
		}
	}
	return false, nil
}
