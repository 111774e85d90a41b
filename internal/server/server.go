package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/abhi11j/CodeCatalyst/internal/apply"
	"github.com/abhi11j/CodeCatalyst/internal/config"
	"github.com/abhi11j/CodeCatalyst/internal/domain"
	"github.com/abhi11j/CodeCatalyst/internal/scan"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// server is asked to stop.
const shutdownTimeout = 10 * time.Second

// Scanner runs one repository scan.
type Scanner interface {
	Scan(ctx context.Context, req scan.Request) (*domain.ScanReport, error)
}

// Applier turns accepted suggestions into a branch and pull request.
type Applier interface {
	Apply(ctx context.Context, opts apply.Options) (*apply.Result, error)
}

// ScannerFactory builds a scanner for a request. token is the
// per-request GitHub token; empty means the server's configured token.
type ScannerFactory func(token string) (Scanner, error)

// ApplierFactory builds an applier for a request token.
type ApplierFactory func(token string) (Applier, error)

// Server is the HTTP front end for the scan and apply flows.
type Server struct {
	cfg      *config.Config
	scanners ScannerFactory
	appliers ApplierFactory
	logger   *slog.Logger
	mux      *http.ServeMux
}

// New wires the routes. Factories must be non-nil.
func New(cfg *config.Config, scanners ScannerFactory, appliers ApplierFactory, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		scanners: scanners,
		appliers: appliers,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /api/health-check", s.handleHealth)
	s.mux.HandleFunc("POST /api/scan-repos", s.handleScan)
	s.mux.HandleFunc("POST /api/apply-suggestions", s.handleApply)

	// Method fallbacks keep 405 responses in the JSON envelope.
	s.mux.HandleFunc("/api/health-check", s.handleMethodNotAllowed)
	s.mux.HandleFunc("/api/scan-repos", s.handleMethodNotAllowed)
	s.mux.HandleFunc("/api/apply-suggestions", s.handleMethodNotAllowed)
	s.mux.HandleFunc("/", s.handleNotFound)
}

// ServeHTTP applies CORS and request logging around the mux.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.logger.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(start),
	)
}

// Run serves until the listener fails or ctx is canceled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", "no such endpoint: "+r.URL.Path)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not supported on "+r.URL.Path)
}
