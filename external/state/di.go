package state

import (
	"context"
	"fmt"
	"time"

	"github.com/foxseedlab/rusuban/internal/state"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do/v2"
)

const migrationTimeout = 15 * time.Second

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (state.Repository, error) {
		pool := do.MustInvoke[*pgxpool.Pool](i)
		ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
		defer cancel()
		if err := RunMigration(ctx, pool); err != nil {
			return nil, fmt.Errorf("failed to run mode_state migration: %w", err)
		}
		return NewPostgresRepository(pool), nil
	})
	do.Provide(injector, func(i do.Injector) (*state.Store, error) {
		repo := do.MustInvoke[state.Repository](i)
		return state.NewStore(repo), nil
	})
}
