// Package httpapi exposes the feed, source health, and community report
// endpoints alongside the operational health and metrics routes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/begbajrami/begdar/internal/domain"
	"github.com/begbajrami/begdar/internal/feed"
	"github.com/begbajrami/begdar/internal/observability"
	"github.com/begbajrami/begdar/internal/report"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the event feed API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	engine     *feed.Engine
	store      *report.Store
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(addr string, engine *feed.Engine, store *report.Store, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		engine:  engine,
		store:   store,
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /api/sources", s.handleSources)
	mux.HandleFunc("GET /api/alert", s.handleAlert)
	mux.HandleFunc("POST /api/reports", s.handleSubmitReport)
	mux.HandleFunc("POST /api/reports/{id}/approve", s.handleApproveReport)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(engine))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleEvents serves the merged feed, optionally narrowed by the category
// and q query parameters.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")

	if category != "" && category != domain.FilterAll {
		if _, ok := domain.ParseCategory(category); !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", category))
			return
		}
	}

	snap := s.engine.Snapshot()
	events := domain.Filter(snap.Events, category, query)

	writeJSON(w, http.StatusOK, map[string]any{
		"events":         events,
		"total":          len(events),
		"critical_count": snap.CriticalCount,
		"conflict_count": snap.ConflictCount,
	})
}

func (s *Server) handleSources(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sources": s.engine.Statuses()})
}

// handleAlert serves the active critical alert, or 204 when none is active.
func (s *Server) handleAlert(w http.ResponseWriter, _ *http.Request) {
	snap := s.engine.Snapshot()
	if snap.CriticalAlert == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, snap.CriticalAlert)
}

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	var sub report.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rep, err := s.store.Submit(sub)
	if err != nil {
		if errors.Is(err, report.ErrEmptyTitle) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("submit report failed", "error", err)
		writeError(w, http.StatusInternalServerError, "submit failed")
		return
	}

	s.metrics.ReportsSubmitted.Inc()
	writeJSON(w, http.StatusCreated, rep)
}

func (s *Server) handleApproveReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	event, err := s.store.Approve(id)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, report.ErrAlreadyApproved):
			writeError(w, http.StatusConflict, err.Error())
		default:
			s.logger.Error("approve report failed", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "approve failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
