package classifier

import (
	"context"
	"errors"
	"testing"
)

type mockRemote struct {
	urgent bool
	err    error
	calls  int
}

func (m *mockRemote) IsUrgent(_ context.Context, _ string) (bool, error) {
	m.calls++
	return m.urgent, m.err
}

func TestKeyword_MatchesVocabulary(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"this is an emergency, help", true},
		{"URGENT: call me back", true},
		{"please respond ASAP", true},
		{"it is quite Important", true},
		{"call me immediately", true},
		{"I need help with the sink", true},
		{"call me when you can", false},
		{"just saying hi", false},
		{"", false},
		{"   \t\n ", false},
	}
	k := NewKeyword()
	for _, tc := range cases {
		got := k.Classify(context.Background(), tc.text)
		if got.Urgent != tc.want {
			t.Fatalf("Classify(%q).Urgent = %v, want %v", tc.text, got.Urgent, tc.want)
		}
		if got.Source != SourceKeyword {
			t.Fatalf("Classify(%q).Source = %q, want %q", tc.text, got.Source, SourceKeyword)
		}
	}
}

func TestFallback_UsesRemoteAnswer(t *testing.T) {
	remote := &mockRemote{urgent: true}
	f := NewFallback(remote)

	got := f.Classify(context.Background(), "water is leaking everywhere")
	if !got.Urgent || got.Source != SourceRemote || got.Degraded != "" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFallback_SkipsRemoteForEmptyInput(t *testing.T) {
	remote := &mockRemote{urgent: true}
	f := NewFallback(remote)

	got := f.Classify(context.Background(), "   ")
	if got.Urgent {
		t.Fatal("whitespace-only input must never be urgent")
	}
	if remote.calls != 0 {
		t.Fatalf("expected no remote call for empty input, got %d", remote.calls)
	}
}

func TestFallback_DegradesToKeywordOnRemoteFailure(t *testing.T) {
	remote := &mockRemote{err: errors.New("upstream timeout")}
	f := NewFallback(remote)

	got := f.Classify(context.Background(), "this is urgent")
	if !got.Urgent {
		t.Fatal("expected keyword fallback to flag urgent text")
	}
	if got.Source != SourceKeyword || got.Degraded == "" {
		t.Fatalf("expected degraded keyword result, got %+v", got)
	}

	got = f.Classify(context.Background(), "nothing special")
	if got.Urgent {
		t.Fatal("expected keyword fallback to stay calm on plain text")
	}
}
