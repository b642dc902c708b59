package state

import (
	"context"
	"errors"
	"testing"
	"time"
)

type failingRepository struct {
	loadErr error
	saveErr error
}

func (r *failingRepository) Load(_ context.Context) (*ModeRecord, error) {
	return nil, r.loadErr
}

func (r *failingRepository) Save(_ context.Context, _ ModeRecord) error {
	return r.saveErr
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newTestStore(repo Repository) *Store {
	return NewStoreWithNow(repo, fixedNow)
}

func TestGet_CreatesDefaultRecordWhenAbsent(t *testing.T) {
	repo := NewMemoryRepository()
	s := newTestStore(repo)

	got := s.Get(context.Background())
	if got.Mode != ModeNormal || got.Active {
		t.Fatalf("expected default inactive record, got %+v", got)
	}
	if repo.SaveCount() != 1 {
		t.Fatalf("expected default record to be persisted once, got %d saves", repo.SaveCount())
	}
}

func TestGet_ReturnsActiveRecordBeforeExpiry(t *testing.T) {
	repo := NewMemoryRepository()
	expires := fixedNow().Add(10 * time.Minute)
	_ = repo.Save(context.Background(), ModeRecord{
		Mode:      ModeSleep,
		Active:    true,
		ExpiresAt: &expires,
		ForwardTo: "+15550001111",
	})
	s := newTestStore(repo)

	got := s.Get(context.Background())
	if !got.Active || got.Mode != ModeSleep {
		t.Fatalf("expected active sleep record, got %+v", got)
	}
}

func TestGet_HealsExpiredRecordAndPersists(t *testing.T) {
	repo := NewMemoryRepository()
	expires := fixedNow().Add(-time.Minute)
	_ = repo.Save(context.Background(), ModeRecord{Mode: ModeMeeting, Active: true, ExpiresAt: &expires})
	s := newTestStore(repo)

	got := s.Get(context.Background())
	if got.Active {
		t.Fatalf("expected expired record to read inactive, got %+v", got)
	}
	if got.ExpiresAt != nil {
		t.Fatal("expected expiry to be cleared on heal")
	}
	savesAfterHeal := repo.SaveCount()
	if savesAfterHeal != 2 {
		t.Fatalf("expected heal to persist the correction, got %d saves", savesAfterHeal)
	}

	// A second read is a no-op: the stored record is already healed.
	_ = s.Get(context.Background())
	if repo.SaveCount() != savesAfterHeal {
		t.Fatalf("expected idempotent heal, got %d saves", repo.SaveCount())
	}
}

func TestGet_TreatsMissingExpiryAsInactive(t *testing.T) {
	repo := NewMemoryRepository()
	_ = repo.Save(context.Background(), ModeRecord{Mode: ModeDriving, Active: true, ExpiresAt: nil})
	s := newTestStore(repo)

	got := s.Get(context.Background())
	if got.Active {
		t.Fatalf("expected record without expiry to read inactive, got %+v", got)
	}
	if repo.SaveCount() != 2 {
		t.Fatalf("expected malformed record to be corrected and persisted, got %d saves", repo.SaveCount())
	}
}

func TestGet_DegradesToDefaultOnLoadFailure(t *testing.T) {
	s := newTestStore(&failingRepository{loadErr: errors.New("disk gone")})

	got := s.Get(context.Background())
	if got.Mode != ModeNormal || got.Active {
		t.Fatalf("expected default record on load failure, got %+v", got)
	}
}

func TestGet_HealPreservesForwardNumber(t *testing.T) {
	repo := NewMemoryRepository()
	expires := fixedNow().Add(-time.Hour)
	_ = repo.Save(context.Background(), ModeRecord{
		Mode:      ModeCustom,
		Reason:    "at the gym",
		Active:    true,
		ExpiresAt: &expires,
		ForwardTo: "+15550002222",
	})
	s := newTestStore(repo)

	got := s.Get(context.Background())
	if got.ForwardTo != "+15550002222" {
		t.Fatalf("expected forward number to survive heal, got %q", got.ForwardTo)
	}
}

func TestPut_RoundTrips(t *testing.T) {
	repo := NewMemoryRepository()
	s := newTestStore(repo)
	expires := fixedNow().Add(5 * time.Minute)
	want := ModeRecord{Mode: ModeCustom, Reason: "errand", Active: true, ExpiresAt: &expires}

	if err := s.Put(context.Background(), want); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	got := s.Get(context.Background())
	if got.Mode != want.Mode || got.Reason != want.Reason || !got.Active {
		t.Fatalf("unexpected record after put: %+v", got)
	}
}

func TestParseMode_UnknownFallsBackToNormal(t *testing.T) {
	cases := map[string]Mode{
		"sleep":    ModeSleep,
		"meeting":  ModeMeeting,
		"driving":  ModeDriving,
		"custom":   ModeCustom,
		"normal":   ModeNormal,
		"":         ModeNormal,
		"vacation": ModeNormal,
	}
	for input, want := range cases {
		if got := ParseMode(input); got != want {
			t.Fatalf("ParseMode(%q) = %q, want %q", input, got, want)
		}
	}
}
