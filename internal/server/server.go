// Package server exposes a loaded strategy tree over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lox/pokeradvisor/internal/advisor"
	"github.com/lox/pokeradvisor/internal/strategy"
	"github.com/lox/pokeradvisor/internal/summary"
)

const (
	maxBodyBytes = 1 << 16
	defaultRuns  = 20
	maxRuns      = 500
)

// History lists recently recorded advisor runs.
type History interface {
	Recent(ctx context.Context, limit int) ([]summary.Entry, error)
}

// Server answers strategy queries against one immutable tree.
type Server struct {
	addr        string
	tree        *strategy.Tree
	history     History
	readTimeout time.Duration
	logger      *log.Logger
	router      chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithHistory enables GET /v1/runs.
func WithHistory(h History) Option {
	return func(s *Server) { s.history = h }
}

// WithReadTimeout bounds how long a client may take to send a request.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) { s.readTimeout = d }
}

// NewServer creates a server for tree listening on addr.
func NewServer(addr string, tree *strategy.Tree, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		addr:        addr,
		tree:        tree,
		readTimeout: 15 * time.Second,
		logger:      logger.WithPrefix("server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/strategy", s.handleStrategy)
		r.Post("/report", s.handleReport)
		r.Get("/runs", s.handleRuns)
	})
	return r
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadTimeout:       s.readTimeout,
		ReadHeaderTimeout: s.readTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

type evaluateRequest struct {
	Hero  string `json:"hero"`
	Board string `json:"board"`
}

type evaluateResponse struct {
	Strength string `json:"strength"`
	Exact    string `json:"exact,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp := evaluateResponse{Strength: strengthOf(req.Hero, req.Board)}
	resp.Exact, _ = exactOf(req.Hero, req.Board)
	s.writeJSON(w, http.StatusOK, resp)
}

type strategyRequest struct {
	Hero  string `json:"hero"`
	Turn  string `json:"turn"`
	River string `json:"river"`
}

type streetStrategies struct {
	Street     advisor.Street            `json:"street"`
	Found      bool                      `json:"found"`
	Strategies strategy.StreetStrategies `json:"strategies"`
}

type strategyResponse struct {
	Hero    string             `json:"hero"`
	Streets []streetStrategies `json:"streets"`
}

func (s *Server) handleStrategy(w http.ResponseWriter, r *http.Request) {
	var req strategyRequest
	if !s.decode(w, r, &req) {
		return
	}
	q, err := newQuery(req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := strategyResponse{Hero: q.hero}
	resp.Streets = append(resp.Streets, streetStrategies{
		Street:     advisor.Flop,
		Found:      true,
		Strategies: s.tree.Flop(q.hero),
	})
	if q.turn != "" {
		st := streetStrategies{Street: advisor.Turn}
		st.Strategies, st.Found = s.tree.Turn(q.hero, q.turn)
		resp.Streets = append(resp.Streets, st)
	}
	if q.river != "" {
		st := streetStrategies{Street: advisor.River}
		st.Strategies, st.Found = s.tree.River(q.hero, q.turn, q.river)
		resp.Streets = append(resp.Streets, st)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type reportRequest struct {
	Hero  string `json:"hero"`
	Board string `json:"board"`
	Turn  string `json:"turn"`
	River string `json:"river"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if !s.decode(w, r, &req) {
		return
	}
	in, err := advisor.ParseInput(req.Hero, req.Board, req.Turn, req.River)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, advisor.BuildReport(s.tree, in))
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, http.StatusNotFound, errors.New("run history is not configured"))
		return
	}

	limit := defaultRuns
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = min(n, maxRuns)
	}

	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to list runs", "error", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("failed to list runs"))
		return
	}
	if entries == nil {
		entries = []summary.Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
