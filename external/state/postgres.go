package state

import (
	"context"
	"time"

	"github.com/foxseedlab/rusuban/internal/state"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The mode record is a single row; the CHECK constraint pins its id so an
// upsert can never grow the table.
var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS mode_state (
		id SMALLINT PRIMARY KEY CHECK (id = 1),
		mode TEXT NOT NULL DEFAULT 'normal',
		reason TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT FALSE,
		expires_at TIMESTAMPTZ,
		forward_to TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrationStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) state.Repository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Load(ctx context.Context) (*state.ModeRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT mode, reason, active, expires_at, forward_to FROM mode_state WHERE id = 1`)
	var record state.ModeRecord
	var mode string
	var expiresAt *time.Time
	err := row.Scan(&mode, &record.Reason, &record.Active, &expiresAt, &record.ForwardTo)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	record.Mode = state.ParseMode(mode)
	record.ExpiresAt = expiresAt
	return &record, nil
}

func (r *PostgresRepository) Save(ctx context.Context, record state.ModeRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO mode_state (id, mode, reason, active, expires_at, forward_to, updated_at)
		 VALUES (1, $1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (id) DO UPDATE
		 SET mode = $1, reason = $2, active = $3, expires_at = $4, forward_to = $5, updated_at = NOW()`,
		string(record.Mode), record.Reason, record.Active, record.ExpiresAt, record.ForwardTo)
	return err
}
