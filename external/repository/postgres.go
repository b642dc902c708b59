package repository

import (
	"context"
	"time"

	"github.com/foxseedlab/rusuban/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) CreateCall(ctx context.Context, input repository.CreateCallInput) (*repository.Call, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO calls (call_sid, from_number, mode, greeting, started_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, call_sid, from_number, mode, greeting, started_at, created_at`,
		input.CallSID, input.FromNumber, input.Mode, input.Greeting, input.StartedAt)
	var c repository.Call
	err := row.Scan(&c.ID, &c.CallSID, &c.FromNumber, &c.Mode, &c.Greeting, &c.StartedAt, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) CompleteCall(ctx context.Context, input repository.CompleteCallInput) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE calls
		 SET transcript = $2, urgent = $3, classifier_source = $4, outcome = $5, reply = $6, completed_at = $7
		 WHERE id = $1`,
		input.CallID, input.Transcript, input.Urgent, input.ClassifierSource,
		string(input.Outcome), input.Reply, input.CompletedAt)
	return err
}

func (r *PostgresRepository) ListRecentCalls(ctx context.Context, limit int) ([]repository.Call, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, call_sid, from_number, mode, greeting, transcript, urgent,
		        classifier_source, outcome, reply, started_at, completed_at, created_at
		 FROM calls ORDER BY started_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.Call
	for rows.Next() {
		var c repository.Call
		var outcome string
		var completedAt *time.Time
		if err := rows.Scan(&c.ID, &c.CallSID, &c.FromNumber, &c.Mode, &c.Greeting, &c.Transcript,
			&c.Urgent, &c.ClassifierSource, &outcome, &c.Reply, &c.StartedAt, &completedAt, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Outcome = repository.CallOutcome(outcome)
		c.CompletedAt = completedAt
		list = append(list, c)
	}
	return list, rows.Err()
}
