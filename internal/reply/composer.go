package reply

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/foxseedlab/rusuban/internal/state"
)

const (
	sentenceSleep         = "The user is currently sleeping. I will notify them."
	sentenceMeeting       = "The user is in a meeting and cannot take calls right now."
	sentenceDriving       = "The user is driving. I will tell them to call you when safe."
	sentenceCustomFormat  = "The user is not available: %s. I will let them know."
	sentenceCustomGeneric = "The user is currently unavailable. I will notify them."
	sentenceGeneric       = "The user is not available right now. They will call you back soon."
)

// Sentence is a composed spoken reply plus how it was produced.
type Sentence struct {
	Text     string
	Source   string
	Degraded string
}

const (
	SourceStatic = "static"
	SourceRemote = "remote"
)

// Composer maps the current mode record and the caller's transcript to a
// single short spoken sentence.
type Composer interface {
	Compose(ctx context.Context, record state.ModeRecord, transcript string) Sentence
}

// Remote is the port for an external one-sentence reply generation call.
type Remote interface {
	GenerateReply(ctx context.Context, record state.ModeRecord, transcript string) (string, error)
}

// Static is the deterministic mode-to-sentence mapping. It depends only on
// the record's mode and reason, never on the transcript.
func Static(record state.ModeRecord) string {
	switch record.Mode {
	case state.ModeSleep:
		return sentenceSleep
	case state.ModeMeeting:
		return sentenceMeeting
	case state.ModeDriving:
		return sentenceDriving
	case state.ModeCustom:
		if reason := strings.TrimSpace(record.Reason); reason != "" {
			return fmt.Sprintf(sentenceCustomFormat, reason)
		}
		return sentenceCustomGeneric
	default:
		return sentenceGeneric
	}
}

type StaticComposer struct{}

func NewStaticComposer() StaticComposer {
	return StaticComposer{}
}

func (StaticComposer) Compose(_ context.Context, record state.ModeRecord, _ string) Sentence {
	return Sentence{Text: Static(record), Source: SourceStatic}
}

// remoteReplyMaxLen bounds a generated reply; anything longer is not a
// single short sentence and falls back to the template.
const remoteReplyMaxLen = 300

// GeneratedComposer asks a remote generator for a more natural sentence and
// falls back to the static template when the call fails or the answer is
// unusable. The caller always gets a sentence.
type GeneratedComposer struct {
	remote Remote
}

func NewGeneratedComposer(remote Remote) GeneratedComposer {
	return GeneratedComposer{remote: remote}
}

func (c GeneratedComposer) Compose(ctx context.Context, record state.ModeRecord, transcript string) Sentence {
	text, err := c.remote.GenerateReply(ctx, record, transcript)
	if err != nil {
		slog.Warn("remote reply generation failed; falling back to static template", "error", err)
		return Sentence{Text: Static(record), Source: SourceStatic, Degraded: err.Error()}
	}
	text = strings.TrimSpace(text)
	if text == "" || len(text) > remoteReplyMaxLen {
		slog.Warn("remote reply unusable; falling back to static template", "reply_len", len(text))
		return Sentence{Text: Static(record), Source: SourceStatic, Degraded: "unusable remote reply"}
	}
	return Sentence{Text: text, Source: SourceRemote}
}
