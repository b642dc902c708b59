// Package control implements the dashboard-facing mode operations:
// activate, deactivate, status. All three are direct synchronous
// read/write exchanges with the state store.
package control

import (
	"context"
	"log/slog"
	"time"

	"github.com/foxseedlab/rusuban/internal/config"
	"github.com/foxseedlab/rusuban/internal/state"
)

type Service struct {
	cfg   *config.Config
	store *state.Store
	now   func() time.Time
}

func NewService(cfg *config.Config, store *state.Store) *Service {
	return &Service{cfg: cfg, store: store, now: time.Now}
}

type ActivateInput struct {
	Mode            string
	Reason          string
	DurationMinutes int
	ForwardTo       string
}

// Activate replaces the stored record wholesale. The API is permissive:
// unknown modes fall back to normal, a zero duration means the configured
// default, out-of-range durations clamp to [1, max].
func (s *Service) Activate(ctx context.Context, in ActivateInput) (state.ModeRecord, error) {
	duration := s.clampDuration(in.DurationMinutes)
	expires := s.now().Add(time.Duration(duration) * time.Minute)
	record := state.ModeRecord{
		Mode:      state.ParseMode(in.Mode),
		Reason:    in.Reason,
		Active:    true,
		ExpiresAt: &expires,
		ForwardTo: in.ForwardTo,
	}
	if err := s.store.Put(ctx, record); err != nil {
		return state.ModeRecord{}, err
	}
	slog.Info("mode activated", "mode", record.Mode, "duration_min", duration, "expires_at", expires)
	return record, nil
}

// Deactivate resets the record to defaults. The forward number survives
// unless the deployment is configured to clear it.
func (s *Service) Deactivate(ctx context.Context) (state.ModeRecord, error) {
	current := s.store.Get(ctx)
	record := state.DefaultRecord()
	if !s.cfg.ClearForwardOnDeactivate {
		record.ForwardTo = current.ForwardTo
	}
	if err := s.store.Put(ctx, record); err != nil {
		return state.ModeRecord{}, err
	}
	slog.Info("mode cleared")
	return record, nil
}

// Status returns the self-healed current record. A read can cause a
// write: the expiry correction is persisted before the record is
// returned.
func (s *Service) Status(ctx context.Context) state.ModeRecord {
	return s.store.Get(ctx)
}

func (s *Service) clampDuration(minutes int) int {
	if minutes == 0 {
		return s.cfg.DefaultModeDurationMin
	}
	if minutes < 1 {
		return 1
	}
	if minutes > s.cfg.MaxModeDurationMin {
		return s.cfg.MaxModeDurationMin
	}
	return minutes
}
