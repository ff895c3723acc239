package store

import (
	"context"
	"database/sql"
	"fmt"
)

type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

type Inspection struct {
	Dialect        string       `json:"dialect"`
	SchemaVersion  int64        `json:"schema_version"`
	Tables         []string     `json:"tables"`
	Counts         []TableCount `json:"counts"`
	IncidentSchema []ColumnInfo `json:"incident_schema"`
}

var inspectedTables = []string{"faqs", "incident_reports"}

// Inspect summarises what the store holds: tables, row counts and the
// incident_reports column layout.
func Inspect(ctx context.Context, db *sql.DB) (*Inspection, error) {
	dialect := DialectOf(db)
	out := &Inspection{Dialect: dialect.String()}
	version, err := SchemaVersion(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("schema version: %w", err)
	}
	out.SchemaVersion = version
	tablesQuery := `SELECT name FROM sqlite_master WHERE type='table' ORDER BY name`
	if dialect == DialectPostgres {
		tablesQuery = `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() ORDER BY table_name`
	}
	rows, err := db.QueryContext(ctx, tablesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out.Tables = append(out.Tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, table := range inspectedTables {
		var n int64
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out.Counts = append(out.Counts, TableCount{Table: table, Rows: n})
	}
	cols, err := tableColumns(ctx, db, dialect, "incident_reports")
	if err != nil {
		return nil, err
	}
	out.IncidentSchema = cols
	return out, nil
}
