// Package server exposes the launch dashboard over HTTP: JSON endpoints for
// the controls and both charts, and an embedded page that draws them.
//
// Every request is an independent recomputation over the shared read-only
// table, so handlers hold no per-user state.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/launchdash/dashboard"
	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/launch"
)

//go:embed static/index.html
var static embed.FS

// CycleHeader carries the render-cycle id of each response.
const CycleHeader = "X-Render-Cycle"

const shutdownTimeout = 5 * time.Second

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) { s.logger = logger.Named("server") }
}

// WithSliderStep sets the payload slider step reported by /api/controls.
func WithSliderStep(step float64) Option {
	return func(s *Server) { s.step = step }
}

// Server serves the dashboard for one table.
type Server struct {
	table    *launch.Table
	logger   *zap.Logger
	step     float64
	controls dashboard.Controls
	mux      *http.ServeMux
}

// New builds a server over t.
func New(t *launch.Table, opts ...Option) *Server {
	s := &Server{
		table:  t,
		logger: zap.NewNop(),
		step:   dashboard.DefaultSliderStep,
		mux:    http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.controls = dashboard.New(t, dashboard.WithSliderStep(s.step)).Controls()

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/controls", s.handleControls)
	s.mux.HandleFunc("GET /api/charts/outcome", s.handleOutcome)
	s.mux.HandleFunc("GET /api/charts/payload", s.handlePayload)
	return s
}

// Handler returns the HTTP handler with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "records": s.table.Len()})
}

// handleControls reports the controls. A q parameter narrows the site
// options to those whose label contains it, ignoring case.
func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	controls := s.controls
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		controls.Site.Options = controls.Site.Search(q)
	}
	writeJSON(w, http.StatusOK, controls)
}

func (s *Server) handleOutcome(w http.ResponseWriter, r *http.Request) {
	site := siteParam(r)
	var opts []launch.DistributionOption
	switch chart := r.URL.Query().Get("chart"); chart {
	case "", engine.VisualizePie:
	case engine.VisualizeBar:
		opts = append(opts, launch.AsBar())
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid chart %q: want pie or bar", chart))
		return
	}
	writeJSON(w, http.StatusOK, launch.OutcomeDistribution(s.table, site, opts...))
}

func (s *Server) handlePayload(w http.ResponseWriter, r *http.Request) {
	site := siteParam(r)
	rng := s.table.FullRange()
	var err error
	if rng.Low, err = floatParam(r, "low", rng.Low); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if rng.High, err = floatParam(r, "high", rng.High); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, launch.PayloadScatter(s.table, site, s.controls.Payload.Clamp(rng)))
}

func siteParam(r *http.Request) launch.SiteSelector {
	if site := r.URL.Query().Get("site"); site != "" {
		return launch.SiteSelector(site)
	}
	return launch.AllSites
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", name, raw)
	}
	return v, nil
}

// ============================================================================
// RESPONSES & MIDDLEWARE
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests tags each response with a fresh render-cycle id and logs it.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		cycle := uuid.New().String()
		w.Header().Set(CycleHeader, cycle)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("cycle", cycle),
		)
	})
}
