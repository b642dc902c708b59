// Package httpserver exposes the two HTTP surfaces: the telephony
// webhooks that drive call screening and the small control API consumed
// by the companion dashboard.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/foxseedlab/rusuban/internal/call"
	"github.com/foxseedlab/rusuban/internal/config"
	"github.com/foxseedlab/rusuban/internal/control"
	"github.com/foxseedlab/rusuban/internal/repository"
	"github.com/foxseedlab/rusuban/internal/twiml"
)

const (
	recentCallsLimit = 50

	// Spoken when response rendering itself fails; the caller must
	// never get dead air or a bare protocol error.
	fallbackTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response><Say>Sorry, something went wrong. Goodbye.</Say><Hangup></Hangup></Response>`
)

type Server struct {
	cfg     *config.Config
	control *control.Service
	router  *call.Router
	repo    repository.Repository
	httpSrv *http.Server
}

func New(cfg *config.Config, ctrl *control.Service, router *call.Router, repo repository.Repository) *Server {
	s := &Server{cfg: cfg, control: ctrl, router: router, repo: repo}
	s.httpSrv = &http.Server{
		Addr:              cfg.HTTPListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /set-mode", s.handleSetMode)
	mux.HandleFunc("POST /clear-mode", s.handleClearMode)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /calls", s.handleListCalls)
	mux.HandleFunc("POST /incoming-call", s.handleIncomingCall)
	mux.HandleFunc("POST "+call.RecordingCallbackPath, s.handleProcessRecording)
	mux.HandleFunc("GET /audio/{name}", s.handleServeAudio)
	mux.HandleFunc("GET /play-audio", s.handlePlayAudio)
	mux.HandleFunc("POST /play-audio", s.handlePlayAudio)
	return mux
}

func (s *Server) ListenAndServe() error {
	slog.Info("http server listening", "addr", s.httpSrv.Addr)
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

type setModeRequest struct {
	Mode       string `json:"mode"`
	Reason     string `json:"reason"`
	Duration   int    `json:"duration"`
	UserNumber string `json:"user_number"`
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req setModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	record, err := s.control.Activate(r.Context(), control.ActivateInput{
		Mode:            req.Mode,
		Reason:          req.Reason,
		DurationMinutes: req.Duration,
		ForwardTo:       req.UserNumber,
	})
	if err != nil {
		slog.Error("set-mode failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to persist mode")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "state": record})
}

func (s *Server) handleClearMode(w http.ResponseWriter, r *http.Request) {
	record, err := s.control.Deactivate(r.Context())
	if err != nil {
		slog.Error("clear-mode failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to persist mode")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "state": record})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.control.Status(r.Context()))
}

type callListItem struct {
	ID          string     `json:"id"`
	CallSID     string     `json:"call_sid"`
	FromNumber  string     `json:"from_number"`
	Mode        string     `json:"mode"`
	Transcript  string     `json:"transcript"`
	Urgent      bool       `json:"urgent"`
	Outcome     string     `json:"outcome"`
	Reply       string     `json:"reply"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (s *Server) handleListCalls(w http.ResponseWriter, r *http.Request) {
	calls, err := s.repo.ListRecentCalls(r.Context(), recentCallsLimit)
	if err != nil {
		slog.Error("failed to list calls", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to list calls")
		return
	}
	items := make([]callListItem, 0, len(calls))
	for _, c := range calls {
		items = append(items, callListItem{
			ID:          c.ID,
			CallSID:     c.CallSID,
			FromNumber:  c.FromNumber,
			Mode:        c.Mode,
			Transcript:  c.Transcript,
			Urgent:      c.Urgent,
			Outcome:     string(c.Outcome),
			Reply:       c.Reply,
			StartedAt:   c.StartedAt,
			CompletedAt: c.CompletedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"calls": items})
}

func (s *Server) handleIncomingCall(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Warn("unparseable incoming-call form", "error", err)
	}
	resp := s.router.HandleIncomingCall(r.Context(), call.IncomingCallEvent{
		CallSID: r.PostFormValue("CallSid"),
		From:    r.PostFormValue("From"),
		To:      r.PostFormValue("To"),
	})
	writeTwiML(w, resp)
}

func (s *Server) handleProcessRecording(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Warn("unparseable recording form", "error", err)
	}
	resp := s.router.HandleRecording(r.Context(), call.RecordingEvent{
		CallSID:      r.PostFormValue("CallSid"),
		RecordingURL: r.PostFormValue("RecordingUrl"),
	})
	writeTwiML(w, resp)
}

func (s *Server) handleServeAudio(w http.ResponseWriter, r *http.Request) {
	// Base strips any path traversal out of the requested name.
	name := path.Base(r.PathValue("name"))
	full := filepath.Join(s.cfg.AudioDir, name)
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	http.ServeFile(w, r, full)
}

// handlePlayAudio returns markup that plays a hosted test file into an
// outbound call; used for manual end-to-end testing only.
func (s *Server) handlePlayAudio(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("file")
	if name == "" {
		name = "test_caller_urgent.wav"
	}
	audioURL := s.cfg.PublicBaseURL + "/audio/" + path.Base(name)
	writeTwiML(w, twiml.NewResponse(twiml.Play{URL: audioURL}, twiml.Hangup{}))
}

func writeTwiML(w http.ResponseWriter, resp *twiml.Response) {
	body, err := resp.Render()
	if err != nil {
		slog.Error("failed to render call response", "error", err)
		body = fallbackTwiML
	}
	w.Header().Set("Content-Type", "text/xml")
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "error": message})
}
