package state

import (
	"context"
	"time"
)

// Mode is a named, time-boxed availability state of the called user.
type Mode string

const (
	ModeNormal  Mode = "normal"
	ModeSleep   Mode = "sleep"
	ModeMeeting Mode = "meeting"
	ModeDriving Mode = "driving"
	ModeCustom  Mode = "custom"
)

// ParseMode maps free-form input to a Mode. Unknown values fall back to
// ModeNormal; the control API is permissive, not validating.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeSleep, ModeMeeting, ModeDriving, ModeCustom, ModeNormal:
		return Mode(s)
	default:
		return ModeNormal
	}
}

// ModeRecord is the sole persisted availability record. It is replaced
// wholesale on every write; there is no partial update and no history.
type ModeRecord struct {
	Mode      Mode       `json:"mode"`
	Reason    string     `json:"reason"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at"`
	ForwardTo string     `json:"forward_to"`
}

func DefaultRecord() ModeRecord {
	return ModeRecord{Mode: ModeNormal}
}

// ActiveAt reports whether the record is in effect at the given instant.
// A record with a missing expiry is never active, regardless of the
// stored Active flag.
func (r ModeRecord) ActiveAt(now time.Time) bool {
	if !r.Active || r.ExpiresAt == nil {
		return false
	}
	return now.Before(*r.ExpiresAt)
}

// Repository is the persistence port for the mode record.
// Load returns (nil, nil) when no record has been written yet.
type Repository interface {
	Load(ctx context.Context) (*ModeRecord, error)
	Save(ctx context.Context, record ModeRecord) error
}
