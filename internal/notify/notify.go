package notify

import (
	"context"
	"time"
)

// CallSummary is posted to the companion app after every screened call so
// the user can see who called and why while a mode was active.
type CallSummary struct {
	CallSID     string     `json:"call_sid"`
	FromNumber  string     `json:"from_number"`
	Mode        string     `json:"mode"`
	Transcript  string     `json:"transcript"`
	Urgent      bool       `json:"urgent"`
	Outcome     string     `json:"outcome"`
	Reply       string     `json:"reply,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type Notifier interface {
	SendCallSummary(ctx context.Context, summary CallSummary) error
}
