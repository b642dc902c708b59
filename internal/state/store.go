package state

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store wraps a Repository with the expiry-reconciling read contract:
// Get reads, reconciles expiry, persists the correction if the stored
// record went stale, and returns the healed record. Callers on the
// call-handling path always observe truth without a background sweep.
type Store struct {
	mu   sync.Mutex
	repo Repository
	now  func() time.Time
}

func NewStore(repo Repository) *Store {
	return NewStoreWithNow(repo, time.Now)
}

// NewStoreWithNow injects the clock used for expiry reconciliation.
func NewStoreWithNow(repo Repository, now func() time.Time) *Store {
	return &Store{repo: repo, now: now}
}

// Get returns the current record, creating and persisting a default one
// if none exists. A persistence failure never propagates: routing must
// keep working, so Get degrades to the default inactive record and logs.
func (s *Store) Get(ctx context.Context) ModeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, err := s.repo.Load(ctx)
	if err != nil {
		slog.Error("mode state load failed; degrading to default record", "error", err)
		return DefaultRecord()
	}
	if loaded == nil {
		record := DefaultRecord()
		if err := s.repo.Save(ctx, record); err != nil {
			slog.Error("failed to persist initial mode record", "error", err)
		}
		return record
	}

	record := *loaded
	if record.Active && !record.ActiveAt(s.now()) {
		record.Active = false
		record.ExpiresAt = nil
		if err := s.repo.Save(ctx, record); err != nil {
			slog.Error("failed to persist expired-mode correction", "error", err)
		} else {
			slog.Info("mode expired; record healed", "mode", record.Mode)
		}
	}
	return record
}

// Put overwrites the stored record wholesale.
func (s *Store) Put(ctx context.Context, record ModeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Save(ctx, record)
}
