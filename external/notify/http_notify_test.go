package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foxseedlab/rusuban/internal/notify"
)

func TestSendCallSummary_EmptyWebhookURL(t *testing.T) {
	sender := NewHTTPSender("", 5*time.Second)
	err := sender.SendCallSummary(context.Background(), notify.CallSummary{CallSID: "CA1"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestSendCallSummary_Success(t *testing.T) {
	var got notify.CallSummary
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL, 5*time.Second)
	summary := notify.CallSummary{
		CallSID:    "CA1",
		FromNumber: "+15551230000",
		Mode:       "sleep",
		Transcript: "call me back",
		Outcome:    "replied",
		StartedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := sender.SendCallSummary(context.Background(), summary); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.CallSID != "CA1" || got.Mode != "sleep" || got.Outcome != "replied" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestSendCallSummary_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL, 5*time.Second)
	if err := sender.SendCallSummary(context.Background(), notify.CallSummary{}); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestSendCallSummary_SlowEndpointTimesOut(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	sender := NewHTTPSender(server.URL, 50*time.Millisecond)
	start := time.Now()
	err := sender.SendCallSummary(context.Background(), notify.CallSummary{CallSID: "CA1"})
	if err == nil {
		t.Fatal("expected timeout error from hanging endpoint")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("send blocked for %v; the timeout must bound it", elapsed)
	}
}
