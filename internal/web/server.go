// Package web serves the interactive dashboard and the widget event API.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/huangsam/voltview/core"
)

// ShutdownTimeout bounds how long in-flight requests may run after the context ends.
const ShutdownTimeout = 5 * time.Second

// Server exposes one Session over HTTP.
type Server struct {
	session *core.Session
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer creates a server for session. metrics may be nil.
func NewServer(session *core.Session, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{session: session, metrics: metrics, logger: logger}
}

// Router registers every route.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(withObservability(s.logger, s.metrics))

	r.HandleFunc("/", s.handleShell).Methods(http.MethodGet)
	r.HandleFunc("/charts", s.handleCharts).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/window", s.handleGetWindow).Methods(http.MethodGet)
	api.HandleFunc("/window", s.handleSetWindow).Methods(http.MethodPut)
	api.HandleFunc("/correlation", s.handleCorrelation).Methods(http.MethodGet)
	api.HandleFunc("/metrics/{id}", s.handleToggleMetric).Methods(http.MethodPost)
	api.HandleFunc("/timeline/{action:press|move|release|cancel}", s.handleTimeline).Methods(http.MethodPost)
	api.HandleFunc("/weeks/{index:[0-9]+}/{action:press|enter|click}", s.handleWeek).Methods(http.MethodPost)
	api.HandleFunc("/pointerup", s.handlePointerUp).Methods(http.MethodPost)
	api.HandleFunc("/clocks/{endpoint:start|end}/{action:press|drag|release|time}", s.handleClock).Methods(http.MethodPost)
	return r
}

// Handler is the router behind request ids, panic recovery and gzip.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Router()
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(h)
	return withRequestID(h)
}

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down dashboard")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
