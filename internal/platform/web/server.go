// Package web serves the score store as a read-only JSON leaderboard.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

// maxLimit caps the limit query parameter.
const maxLimit = 100

// ScoreReader is the part of the score store the leaderboard reads.
type ScoreReader interface {
	TopScores(ctx context.Context, size, limit int) ([]storage.Score, error)
	AllStats(ctx context.Context) (map[int]*storage.BoardStats, error)
	Ping(ctx context.Context) error
}

// Server bundles the router and the store it reads from.
type Server struct {
	r      *chi.Mux
	scores ScoreReader
	sizes  []int
	logger *log.Logger
}

// New builds the leaderboard router. sizes lists the field sizes a client may ask for.
func New(scores ScoreReader, sizes []int, logger *log.Logger) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		scores: scores,
		sizes:  sizes,
		logger: logger,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", s.handleHealth)
	s.r.Get("/scores", s.handleScores)
	s.r.Get("/scores/{size}", s.handleScores)
	s.r.Get("/stats", s.handleStats)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return s
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP leaderboard", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP leaderboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.scores.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// scoresResponse is the body of GET /scores and GET /scores/{size}.
type scoresResponse struct {
	Size   int             `json:"size,omitempty"`
	Scores []storage.Score `json:"scores"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	size := 0
	if raw := chi.URLParam(r, "size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_size")
			return
		}
		if !slices.Contains(s.sizes, n) {
			writeError(w, http.StatusNotFound, "unknown_size")
			return
		}
		size = n
	}

	limit := storage.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = min(n, maxLimit)
	}

	scores, err := s.scores.TopScores(r.Context(), size, limit)
	if err != nil {
		s.logger.Error("cannot load scores", "size", size, "error", err)
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	if scores == nil {
		scores = []storage.Score{}
	}
	writeJSON(w, http.StatusOK, scoresResponse{Size: size, Scores: scores})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.scores.AllStats(r.Context())
	if err != nil {
		s.logger.Error("cannot load stats", "error", err)
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}

	out := make([]*storage.BoardStats, 0, len(stats))
	for _, size := range s.sizes {
		if st, ok := stats[size]; ok {
			out = append(out, st)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"boards": out})
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	//nolint:errcheck // Client went away; nothing left to do
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
