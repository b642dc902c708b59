package repository

import (
	"context"
	"time"
)

type CreateCallInput struct {
	CallSID    string
	FromNumber string
	Mode       string
	Greeting   string
	StartedAt  time.Time
}

type CompleteCallInput struct {
	CallID           string
	Transcript       string
	Urgent           bool
	ClassifierSource string
	Outcome          CallOutcome
	Reply            string
	CompletedAt      time.Time
}

// Repository is the call-log port. One row per screened call; the row is
// created at the inbound-call webhook and completed once the routing
// decision has been made.
type Repository interface {
	CreateCall(ctx context.Context, input CreateCallInput) (*Call, error)
	CompleteCall(ctx context.Context, input CompleteCallInput) error
	ListRecentCalls(ctx context.Context, limit int) ([]Call, error)
}
