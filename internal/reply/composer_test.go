package reply

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/foxseedlab/rusuban/internal/state"
)

type mockRemote struct {
	text string
	err  error
}

func (m *mockRemote) GenerateReply(_ context.Context, _ state.ModeRecord, _ string) (string, error) {
	return m.text, m.err
}

func TestStatic_ModeMapping(t *testing.T) {
	cases := []struct {
		name   string
		record state.ModeRecord
		want   string
	}{
		{"sleep", state.ModeRecord{Mode: state.ModeSleep}, "sleeping"},
		{"meeting", state.ModeRecord{Mode: state.ModeMeeting}, "meeting"},
		{"driving", state.ModeRecord{Mode: state.ModeDriving}, "driving"},
		{"custom with reason", state.ModeRecord{Mode: state.ModeCustom, Reason: "at the dentist"}, "at the dentist"},
		{"custom without reason", state.ModeRecord{Mode: state.ModeCustom}, "unavailable"},
		{"custom whitespace reason", state.ModeRecord{Mode: state.ModeCustom, Reason: "  "}, "unavailable"},
		{"normal", state.ModeRecord{Mode: state.ModeNormal}, "call you back"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Static(tc.record)
			if !strings.Contains(got, tc.want) {
				t.Fatalf("Static(%+v) = %q, expected it to mention %q", tc.record, got, tc.want)
			}
		})
	}
}

func TestStatic_Deterministic(t *testing.T) {
	record := state.ModeRecord{Mode: state.ModeCustom, Reason: "on a walk"}
	first := Static(record)
	for i := 0; i < 3; i++ {
		if got := Static(record); got != first {
			t.Fatalf("expected deterministic sentence, got %q then %q", first, got)
		}
	}
}

func TestStatic_NeverMentionsAutomation(t *testing.T) {
	records := []state.ModeRecord{
		{Mode: state.ModeSleep},
		{Mode: state.ModeMeeting},
		{Mode: state.ModeDriving},
		{Mode: state.ModeCustom, Reason: "busy"},
		{Mode: state.ModeCustom},
		{Mode: state.ModeNormal},
	}
	for _, record := range records {
		sentence := strings.ToLower(Static(record))
		for _, banned := range []string{"assistant", "automated", " ai ", "bot"} {
			if strings.Contains(sentence, banned) {
				t.Fatalf("sentence %q reveals automation via %q", sentence, banned)
			}
		}
	}
}

func TestGeneratedComposer_UsesRemoteSentence(t *testing.T) {
	c := NewGeneratedComposer(&mockRemote{text: "She is resting; I will pass your message along."})
	got := c.Compose(context.Background(), state.ModeRecord{Mode: state.ModeSleep}, "hello")
	if got.Source != SourceRemote || got.Degraded != "" {
		t.Fatalf("unexpected sentence: %+v", got)
	}
}

func TestGeneratedComposer_FallsBackOnError(t *testing.T) {
	c := NewGeneratedComposer(&mockRemote{err: errors.New("connection reset")})
	got := c.Compose(context.Background(), state.ModeRecord{Mode: state.ModeMeeting}, "hello")
	if got.Text != Static(state.ModeRecord{Mode: state.ModeMeeting}) {
		t.Fatalf("expected static fallback, got %q", got.Text)
	}
	if got.Source != SourceStatic || got.Degraded == "" {
		t.Fatalf("expected degraded static sentence, got %+v", got)
	}
}

func TestGeneratedComposer_FallsBackOnUnusableReply(t *testing.T) {
	for _, text := range []string{"", "   ", strings.Repeat("long ", 200)} {
		c := NewGeneratedComposer(&mockRemote{text: text})
		got := c.Compose(context.Background(), state.ModeRecord{Mode: state.ModeDriving}, "hi")
		if got.Source != SourceStatic || got.Degraded == "" {
			t.Fatalf("expected fallback for remote reply %q, got %+v", text, got)
		}
	}
}
