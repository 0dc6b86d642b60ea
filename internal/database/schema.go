package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pallet-service/internal/config"
)

// schemaTemplate usa {{id}} y {{real}} para los tipos que cambian entre dialectos
var schemaTemplate = []string{
	`CREATE TABLE IF NOT EXISTS carriers (
		id {{id}},
		name VARCHAR(100) NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		username VARCHAR(50) PRIMARY KEY,
		password_hash VARCHAR(128) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS planning (
		id {{id}},
		weekday INTEGER NOT NULL,
		week INTEGER NOT NULL,
		date DATE NOT NULL,
		planned_time {{real}} NOT NULL DEFAULT 0,
		kind VARCHAR(50) NOT NULL,
		reference VARCHAR(100) NOT NULL DEFAULT '',
		carrier VARCHAR(100) NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		dock VARCHAR(50) NOT NULL DEFAULT '',
		pallet_count INTEGER NOT NULL DEFAULT 0,
		arrival_time VARCHAR(50) NOT NULL DEFAULT '',
		departure_time VARCHAR(50) NOT NULL DEFAULT '',
		delay {{real}} NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS incoming_entries (
		id {{id}},
		kind VARCHAR(50) NOT NULL,
		week INTEGER NOT NULL,
		date DATE NOT NULL,
		carrier VARCHAR(100) NOT NULL,
		document_ref VARCHAR(100) NOT NULL DEFAULT '',
		eur INTEGER NOT NULL DEFAULT 0,
		eur_size VARCHAR(20) NOT NULL DEFAULT '',
		shep INTEGER NOT NULL DEFAULT 0,
		shep_size VARCHAR(20) NOT NULL DEFAULT '',
		lpr INTEGER NOT NULL DEFAULT 0,
		lpr_size VARCHAR(20) NOT NULL DEFAULT '',
		lost INTEGER NOT NULL DEFAULT 0,
		total INTEGER NOT NULL DEFAULT 0,
		comment TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS outgoing_entries (
		id {{id}},
		kind VARCHAR(50) NOT NULL,
		week INTEGER NOT NULL,
		date DATE NOT NULL,
		carrier VARCHAR(100) NOT NULL,
		document_ref VARCHAR(100) NOT NULL DEFAULT '',
		eur_returned INTEGER NOT NULL DEFAULT 0,
		eur_size VARCHAR(20) NOT NULL DEFAULT '',
		shep_returned INTEGER NOT NULL DEFAULT 0,
		shep_size VARCHAR(20) NOT NULL DEFAULT '',
		lpr_returned INTEGER NOT NULL DEFAULT 0,
		lpr_size VARCHAR(20) NOT NULL DEFAULT '',
		lost INTEGER NOT NULL DEFAULT 0,
		total INTEGER NOT NULL DEFAULT 0,
		comment TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_planning_date ON planning(date)`,
	`CREATE INDEX IF NOT EXISTS idx_planning_carrier ON planning(carrier)`,
	`CREATE INDEX IF NOT EXISTS idx_incoming_date ON incoming_entries(date)`,
	`CREATE INDEX IF NOT EXISTS idx_incoming_carrier ON incoming_entries(carrier, kind)`,
	`CREATE INDEX IF NOT EXISTS idx_outgoing_date ON outgoing_entries(date)`,
	`CREATE INDEX IF NOT EXISTS idx_outgoing_carrier ON outgoing_entries(carrier, kind)`,
}

// SchemaStatements devuelve el DDL para el driver indicado
func SchemaStatements(driver string) ([]string, error) {
	var replacer *strings.Replacer
	switch driver {
	case config.DriverPostgres:
		replacer = strings.NewReplacer("{{id}}", "SERIAL PRIMARY KEY", "{{real}}", "DOUBLE PRECISION")
	case config.DriverSQLite:
		replacer = strings.NewReplacer("{{id}}", "INTEGER PRIMARY KEY AUTOINCREMENT", "{{real}}", "REAL")
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	statements := make([]string, 0, len(schemaTemplate))
	for _, tmpl := range schemaTemplate {
		statements = append(statements, replacer.Replace(tmpl))
	}
	return statements, nil
}

// Migrate crea las tablas e índices si no existen, todo en una transacción
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	statements, err := SchemaStatements(driver)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}
