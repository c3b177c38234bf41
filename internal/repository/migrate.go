package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the candidate schema if it does not exist. Idempotent;
// runs at startup before the server accepts traffic.
func Migrate(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS candidates (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
			status TEXT NOT NULL DEFAULT 'new',
			admin_data JSONB,
			applicant_questionnaire JSONB,
			post_interview JSONB,
			assessment JSONB,
			score INTEGER,
			fit_category TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_email ON candidates (lower(email))`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_timestamp ON candidates (timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_status ON candidates (status)`,
		`CREATE TABLE IF NOT EXISTS admin_users (
			email TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			is_active BOOLEAN NOT NULL DEFAULT true
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
