package classifier

import (
	"context"
	"log/slog"
	"strings"
)

// Result carries the urgency decision plus how it was reached. Degraded is
// non-empty when the primary strategy failed and a fallback answered; the
// router logs it without changing control flow.
type Result struct {
	Urgent   bool
	Source   string
	Degraded string
}

const (
	SourceKeyword = "keyword"
	SourceRemote  = "remote"
)

// Classifier maps free-form transcript text to an urgency signal. Classify
// never fails: a caller must never be left unclassified.
type Classifier interface {
	Classify(ctx context.Context, text string) Result
}

// Remote is the port for an external binary text classification call.
type Remote interface {
	IsUrgent(ctx context.Context, text string) (bool, error)
}

var urgentWords = []string{"urgent", "emergency", "important", "asap", "immediately", "help"}

// Keyword classifies by case-insensitive substring scan over a fixed
// vocabulary. Empty or whitespace-only input is never urgent.
type Keyword struct{}

func NewKeyword() Keyword {
	return Keyword{}
}

func (Keyword) Classify(_ context.Context, text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{Source: SourceKeyword}
	}
	lowered := strings.ToLower(trimmed)
	for _, w := range urgentWords {
		if strings.Contains(lowered, w) {
			return Result{Urgent: true, Source: SourceKeyword}
		}
	}
	return Result{Source: SourceKeyword}
}

// Fallback delegates to a remote classifier and answers with the keyword
// scan whenever the remote call fails. The remote answer is authoritative
// only when it arrives intact.
type Fallback struct {
	remote  Remote
	keyword Keyword
}

func NewFallback(remote Remote) Fallback {
	return Fallback{remote: remote, keyword: NewKeyword()}
}

func (f Fallback) Classify(ctx context.Context, text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Source: SourceKeyword}
	}
	urgent, err := f.remote.IsUrgent(ctx, text)
	if err != nil {
		slog.Warn("remote urgency classification failed; falling back to keyword scan", "error", err)
		result := f.keyword.Classify(ctx, text)
		result.Degraded = err.Error()
		return result
	}
	return Result{Urgent: urgent, Source: SourceRemote}
}
