package database

import (
	"context"
	"fmt"
	"log/slog"
)

// schema is applied on every start; each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id            UUID PRIMARY KEY,
		employee_code TEXT NOT NULL,
		name          TEXT NOT NULL,
		email         TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted       BOOLEAN NOT NULL DEFAULT FALSE,
		CONSTRAINT employees_employee_code_key UNIQUE (employee_code)
	)`,
	`CREATE TABLE IF NOT EXISTS time_records (
		id               UUID PRIMARY KEY,
		employee_id      UUID NOT NULL REFERENCES employees (id),
		clock_in         TIMESTAMPTZ NOT NULL,
		clock_out        TIMESTAMPTZ,
		duration_minutes INTEGER,
		date             DATE NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS time_records_date_idx ON time_records (date)`,
	`CREATE INDEX IF NOT EXISTS time_records_employee_date_idx ON time_records (employee_id, date)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS time_records_one_open_per_employee
		ON time_records (employee_id) WHERE clock_out IS NULL`,
}

// Migrate creates the tables and indexes the service needs.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	slog.Info("database schema up to date", "steps", len(schema))
	return nil
}
