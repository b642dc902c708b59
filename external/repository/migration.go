package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS calls (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		call_sid TEXT NOT NULL,
		from_number TEXT NOT NULL DEFAULT '',
		mode TEXT NOT NULL,
		greeting TEXT NOT NULL DEFAULT '',
		transcript TEXT NOT NULL DEFAULT '',
		urgent BOOLEAN NOT NULL DEFAULT FALSE,
		classifier_source TEXT NOT NULL DEFAULT '',
		outcome TEXT NOT NULL DEFAULT '',
		reply TEXT NOT NULL DEFAULT '',
		started_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_calls_started_at ON calls (started_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_calls_call_sid ON calls (call_sid)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
