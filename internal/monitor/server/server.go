// Package server is the HTTP ingress of the monitor: the JSON API the
// dashboard polls, the websocket push channel, health/readiness probes and
// the prometheus scrape endpoint.
package server

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/kpi"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/store"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/view"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/log"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/options"
)

// AlertLifecycle is the mutation surface the handlers call into.
type AlertLifecycle interface {
	Acknowledge(ctx context.Context, alertID, operator string) error
	Resolve(ctx context.Context, alertID, operator string) error
}

// Dependencies are the collaborators the server exposes.
type Dependencies struct {
	Store     *store.Store
	Views     *view.Views
	Sampler   *kpi.Sampler
	Lifecycle AlertLifecycle

	// Ready reports whether the initial bootstrap has completed.
	Ready func() bool
}

// Server serves the monitor API.
type Server struct {
	opts *options.HttpOptions
	deps *Dependencies
	hub  *wsHub
}

// New creates the server and its route table.
func New(opts *options.HttpOptions, deps *Dependencies) *Server {
	s := &Server{
		opts: opts,
		deps: deps,
		hub:  newWSHub(deps.Store, deps.Views),
	}
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	router := s.routes()

	httpServer := &http.Server{
		Addr:    s.opts.Addr,
		Handler: router,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go s.hub.run(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", s.opts.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "HTTP server shutdown failed")
		return err
	}
	log.Info("HTTP server stopped")
	return nil
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/vehicles", s.handleVehicles).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}", s.handleVehicle).Methods(http.MethodGet)
	api.HandleFunc("/alerts", s.handleAlerts).Methods(http.MethodGet)
	api.HandleFunc("/alerts/{id}", s.handleAlert).Methods(http.MethodGet)
	api.HandleFunc("/alerts/{id}/acknowledge", s.handleAcknowledge).Methods(http.MethodPost)
	api.HandleFunc("/alerts/{id}/resolve", s.handleResolve).Methods(http.MethodPost)
	api.HandleFunc("/actions", s.handleActions).Methods(http.MethodGet)
	api.HandleFunc("/triage", s.handleTriage).Methods(http.MethodGet)
	api.HandleFunc("/metrics", s.handleMetricSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/metrics/series", s.handleMetricSeries).Methods(http.MethodGet)
	api.HandleFunc("/heatmap", s.handleHeatmap).Methods(http.MethodGet)
	api.HandleFunc("/center", s.handleCenter).Methods(http.MethodGet)

	router.HandleFunc("/ws", s.hub.handleWS)
	router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.handleReadyz).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}

// statusRecorder captures the response code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack delegates to the wrapped writer so the websocket upgrade still
// works behind the logging middleware.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hj.Hijack()
}

func requestLogger(next http.Handler) http.Handler {
	logger := log.Logr().WithName("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		logger.V(1).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
