// Package call orchestrates one inbound call: greet according to the
// current mode, record the caller, transcribe, classify urgency, then
// bridge to the user or speak a composed reply. Each call is a single
// linear traversal; the only branch is urgent versus not.
package call

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/foxseedlab/rusuban/internal/classifier"
	"github.com/foxseedlab/rusuban/internal/config"
	"github.com/foxseedlab/rusuban/internal/notify"
	"github.com/foxseedlab/rusuban/internal/recording"
	"github.com/foxseedlab/rusuban/internal/reply"
	"github.com/foxseedlab/rusuban/internal/repository"
	"github.com/foxseedlab/rusuban/internal/state"
	"github.com/foxseedlab/rusuban/internal/transcriber"
	"github.com/foxseedlab/rusuban/internal/twiml"
)

// RecordingCallbackPath is where the telephony provider posts the
// recording reference once capture finishes.
const RecordingCallbackPath = "/process-recording"

// Abandoned snapshots (caller hung up before the recording callback) are
// evicted when later calls arrive; there is no background sweeper.
const staleSnapshotTTL = 15 * time.Minute

type IncomingCallEvent struct {
	CallSID string
	From    string
	To      string
}

type RecordingEvent struct {
	CallSID      string
	RecordingURL string
}

type Router struct {
	cfg         *config.Config
	store       *state.Store
	repo        repository.Repository
	transcriber transcriber.Transcriber
	fetcher     recording.Fetcher
	classifier  classifier.Classifier
	composer    reply.Composer
	notifier    notify.Notifier

	mu    sync.Mutex
	calls map[string]*activeCall
	now   func() time.Time
}

// activeCall pins the mode snapshot taken at the inbound-call webhook so
// the recording webhook decides from the same record. A mode change
// mid-call must not change an already-started routing decision.
type activeCall struct {
	id        string
	from      string
	record    state.ModeRecord
	logged    *repository.Call
	startedAt time.Time
}

func NewRouter(
	cfg *config.Config,
	store *state.Store,
	repo repository.Repository,
	stt transcriber.Transcriber,
	fetcher recording.Fetcher,
	cls classifier.Classifier,
	composer reply.Composer,
	notifier notify.Notifier,
) *Router {
	return &Router{
		cfg:         cfg,
		store:       store,
		repo:        repo,
		transcriber: stt,
		fetcher:     fetcher,
		classifier:  cls,
		composer:    composer,
		notifier:    notifier,
		calls:       make(map[string]*activeCall),
		now:         time.Now,
	}
}

// HandleIncomingCall answers the inbound-call notification: speak a
// greeting and instruct the provider to record and call back.
func (r *Router) HandleIncomingCall(ctx context.Context, event IncomingCallEvent) *twiml.Response {
	id := event.CallSID
	if id == "" {
		id = uuid.NewString()
	}
	record := r.store.Get(ctx)

	greeting := greetingGenericSentence
	if record.Active {
		greeting = modeAwareGreeting(string(record.Mode))
	}
	slog.Info("inbound call", "call_sid", id, "from", event.From, "mode", record.Mode, "mode_active", record.Active)

	ac := &activeCall{
		id:        id,
		from:      event.From,
		record:    record,
		startedAt: r.now(),
	}
	logged, err := r.repo.CreateCall(ctx, repository.CreateCallInput{
		CallSID:    id,
		FromNumber: event.From,
		Mode:       string(record.Mode),
		Greeting:   greeting,
		StartedAt:  ac.startedAt,
	})
	if err != nil {
		slog.Error("failed to create call-log row; continuing without it", "error", err, "call_sid", id)
	} else {
		ac.logged = logged
	}
	r.stash(ac)

	return twiml.NewResponse(
		twiml.Say{Message: greeting},
		twiml.Record{
			Action:    RecordingCallbackPath,
			Method:    "POST",
			PlayBeep:  true,
			Timeout:   r.cfg.RecordTimeoutSec,
			MaxLength: r.cfg.RecordMaxLengthSec,
		},
	)
}

// HandleRecording finishes the traversal once the recording reference
// arrives. Every path ends with a spoken sentence and a clean hangup (or
// a bridge); no failure here may surface as a protocol error.
func (r *Router) HandleRecording(ctx context.Context, event RecordingEvent) *twiml.Response {
	ac := r.take(event.CallSID)
	if ac == nil {
		// Snapshot lost (restart between webhooks). Fall back to a fresh
		// read; this is the only path that re-reads mid-call.
		ac = &activeCall{
			id:        event.CallSID,
			record:    r.store.Get(ctx),
			startedAt: r.now(),
		}
		slog.Warn("no snapshot for recording callback; using fresh mode record", "call_sid", ac.id)
	}

	if event.RecordingURL == "" {
		slog.Info("caller hung up before speaking", "call_sid", ac.id)
		r.finalize(ctx, ac, completion{outcome: repository.CallOutcomeNoRecording, reply: sentenceNoRecording})
		return twiml.NewResponse(twiml.Say{Message: sentenceNoRecording}, twiml.Hangup{})
	}

	audio, err := r.fetcher.Fetch(ctx, event.RecordingURL)
	if err != nil {
		// Deliberate no-retry: the caller is live and a second round
		// trip would exceed acceptable latency.
		slog.Error("recording fetch failed; ending call with error sentence", "error", err, "call_sid", ac.id)
		r.finalize(ctx, ac, completion{outcome: repository.CallOutcomeFailed, reply: sentenceProcessingError})
		return twiml.NewResponse(twiml.Say{Message: sentenceProcessingError}, twiml.Hangup{})
	}

	text, err := r.transcriber.Transcribe(ctx, audio)
	if err != nil {
		slog.Warn("transcription failed; routing with empty transcript", "error", err, "call_sid", ac.id)
		text = ""
	}

	decision := r.classifier.Classify(ctx, text)
	if decision.Degraded != "" {
		slog.Warn("urgency classification degraded", "call_sid", ac.id, "reason", decision.Degraded)
	}
	slog.Info("routing decision", "call_sid", ac.id, "urgent", decision.Urgent, "source", decision.Source, "transcript_len", len(text))

	if decision.Urgent && ac.record.ForwardTo != "" {
		r.finalize(ctx, ac, completion{
			transcript: text,
			urgent:     true,
			source:     decision.Source,
			outcome:    repository.CallOutcomeBridged,
			reply:      sentenceConnectingToBridge,
		})
		return twiml.NewResponse(
			twiml.Say{Message: sentenceConnectingToBridge},
			twiml.Dial{Number: ac.record.ForwardTo, CallerID: r.cfg.BridgeCallerID},
		)
	}

	sentence := r.composer.Compose(ctx, ac.record, text)
	if sentence.Degraded != "" {
		slog.Warn("reply composition degraded", "call_sid", ac.id, "reason", sentence.Degraded)
	}
	r.finalize(ctx, ac, completion{
		transcript: text,
		urgent:     decision.Urgent,
		source:     decision.Source,
		outcome:    repository.CallOutcomeReplied,
		reply:      sentence.Text,
	})
	return twiml.NewResponse(twiml.Say{Message: sentence.Text}, twiml.Hangup{})
}

type completion struct {
	transcript string
	urgent     bool
	source     string
	outcome    repository.CallOutcome
	reply      string
}

// finalize records the outcome and notifies the companion app. Both are
// best effort; the spoken response never waits on them failing.
func (r *Router) finalize(ctx context.Context, ac *activeCall, c completion) {
	completedAt := r.now()
	if ac.logged != nil {
		err := r.repo.CompleteCall(ctx, repository.CompleteCallInput{
			CallID:           ac.logged.ID,
			Transcript:       c.transcript,
			Urgent:           c.urgent,
			ClassifierSource: c.source,
			Outcome:          c.outcome,
			Reply:            c.reply,
			CompletedAt:      completedAt,
		})
		if err != nil {
			slog.Error("failed to complete call-log row", "error", err, "call_sid", ac.id)
		}
	}
	if err := r.notifier.SendCallSummary(ctx, notify.CallSummary{
		CallSID:     ac.id,
		FromNumber:  ac.from,
		Mode:        string(ac.record.Mode),
		Transcript:  c.transcript,
		Urgent:      c.urgent,
		Outcome:     string(c.outcome),
		Reply:       c.reply,
		StartedAt:   ac.startedAt,
		CompletedAt: &completedAt,
	}); err != nil {
		slog.Error("failed to send call summary webhook", "error", err, "call_sid", ac.id)
	}
}

func (r *Router) stash(ac *activeCall) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-staleSnapshotTTL)
	for id, old := range r.calls {
		if old.startedAt.Before(cutoff) {
			delete(r.calls, id)
			slog.Warn("evicted abandoned call snapshot", "call_sid", id)
		}
	}
	r.calls[ac.id] = ac
}

func (r *Router) take(id string) *activeCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	ac, ok := r.calls[id]
	if !ok {
		return nil
	}
	delete(r.calls, id)
	return ac
}
