package repository

import "time"

type CallOutcome string

const (
	CallOutcomeReplied     CallOutcome = "replied"
	CallOutcomeBridged     CallOutcome = "bridged"
	CallOutcomeNoRecording CallOutcome = "no_recording"
	CallOutcomeFailed      CallOutcome = "failed"
)

type Call struct {
	ID               string
	CallSID          string
	FromNumber       string
	Mode             string
	Greeting         string
	Transcript       string
	Urgent           bool
	ClassifierSource string
	Outcome          CallOutcome
	Reply            string
	StartedAt        time.Time
	CompletedAt      *time.Time
	CreatedAt        time.Time
}
