// Package stubserver is a local stand-in for the assessment collaborator.
// It serves the same endpoints with deterministic answers so the client can
// be developed and tested without the real analysis engine.
package stubserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/assessment"
)

// Options configures the stub.
type Options struct {
	// Questions served by /api/questions/. Nil serves the built-in set.
	Questions []assessment.Question

	// FollowUps returned by /api/analyze-initial/. Nil returns the built-in
	// prompts; an empty non-nil slice returns none.
	FollowUps []string

	// FailFirst answers the first n requests to each endpoint with 503.
	// The liveness probe is never failed.
	FailFirst int

	// Delay is added before every response.
	Delay time.Duration

	// LogRequests enables the chi request logger.
	LogRequests bool

	Version string
}

// Server serves the stub endpoints.
type Server struct {
	opts   Options
	now    func() time.Time
	logger *log.Logger

	mu       sync.Mutex
	failures map[string]int
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.Questions == nil {
		opts.Questions = assessment.FallbackQuestions()
	}
	if opts.FollowUps == nil {
		opts.FollowUps = append([]string(nil), assessment.FollowUpPrompts...)
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	return &Server{opts: opts, now: time.Now, logger: log.Default(), failures: map[string]int{}}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.opts.LogRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Route("/api", func(api chi.Router) {
		api.Get("/test/", s.handleTest)

		api.Group(func(g chi.Router) {
			g.Use(s.delay, s.faultInjection)
			g.Get("/questions/", s.handleQuestions)
			g.Post("/analyze-initial/", s.handleAnalyze)
			g.Post("/generate-report/", s.handleReport)
			g.Get("/system-status/", s.handleSystemStatus)
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return runServer(ctx, srv)
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.Delay > 0 {
			select {
			case <-time.After(s.opts.Delay):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) faultInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.FailFirst > 0 {
			s.mu.Lock()
			n := s.failures[r.URL.Path]
			if n < s.opts.FailFirst {
				s.failures[r.URL.Path] = n + 1
			}
			s.mu.Unlock()
			if n < s.opts.FailFirst {
				s.respondError(w, http.StatusServiceUnavailable, "service warming up")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "InnerBalance API is working!",
		"status":  "success",
	})
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, assessment.QuestionSet{
		Count:     len(s.opts.Questions),
		Questions: s.opts.Questions,
	})
}

type analyzeBody struct {
	Answers      assessment.Answers `json:"answers"`
	AssessmentID assessment.ID      `json:"assessment_id"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body analyzeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Answers) == 0 {
		s.respondError(w, http.StatusBadRequest, "answers are required")
		return
	}

	id := body.AssessmentID
	if id == "" {
		id = assessment.ID(uuid.NewString())
	}
	analysis := assessment.LocalAnalysis(body.Answers, id, s.now())
	analysis.Analysis["symptom_summary"] = "Assessment analyzed by the local stub server"
	analysis.FollowUpQuestions = append([]string(nil), s.opts.FollowUps...)

	s.respondJSON(w, http.StatusOK, analysis)
}

type reportBody struct {
	AssessmentID      assessment.ID                `json:"assessment_id"`
	InitialAnswers    assessment.Answers           `json:"initial_answers"`
	FollowUpResponses assessment.FollowUpResponses `json:"follow_up_responses"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var body reportBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.AssessmentID == "" {
		s.respondError(w, http.StatusBadRequest, "assessment_id is required")
		return
	}

	report := assessment.LocalReport(body.AssessmentID, body.InitialAnswers, body.FollowUpResponses, s.now())
	report.Report["summary"] = fmt.Sprintf("Stub report: %d initial answers and %d follow-up responses reviewed.",
		len(body.InitialAnswers), len(body.FollowUpResponses))
	report.Report["recommendations"] = []string{
		"This report was produced by the local stub server and carries no clinical meaning.",
	}

	s.respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"llm_loaded":           false,
		"vector_store_ready":   true,
		"knowledge_base_items": len(s.opts.Questions),
		"system":               "InnerBalance stub collaborator",
		"version":              s.opts.Version,
	})
}

// respondJSON encodes payload before writing the header so an encoding
// failure becomes a 500 instead of a 200 with an empty body.
func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.logf("stubserver: encode %T response: %v", payload, err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		s.logf("stubserver: write response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) logf(format string, args ...any) {
	if s.opts.LogRequests {
		s.logger.Printf(format, args...)
	}
}
