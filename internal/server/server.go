// Package server serves a built network over HTTP.
//
// Routes:
//
//	GET /healthz          liveness probe
//	GET /version          build information
//	GET /network.json     the network as JSON
//	GET /network.dot      the network as Graphviz DOT
//	GET /network.svg      the network rendered to SVG
//	GET /stats            the network summary
//	GET /vertices/{name}  one city with its connections (case-insensitive)
//	GET /metrics          Prometheus metrics, when a handler is configured
//
// The network is read-only once the server is created, so handlers run
// concurrently without locking it.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cityforest/pkg/export"
	"github.com/matzehuels/cityforest/pkg/graph"
	"github.com/matzehuels/cityforest/pkg/pipeline"
	"github.com/matzehuels/cityforest/pkg/stats"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Addr    string
	Logger  *log.Logger
	Metrics http.Handler // served at /metrics when not nil
	DOT     export.DOTOptions
}

// Server holds a finished network and the HTTP interface serving it.
type Server struct {
	network *export.Network
	graph   *graph.Graph
	summary stats.Summary
	dot     export.DOTOptions
	logger  *log.Logger

	svgOnce sync.Once
	svg     []byte
	svgErr  error

	handler    http.Handler
	httpServer *http.Server
}

// New creates a server for a pipeline result. A prerendered SVG artifact in
// the result is served as is; otherwise the SVG is rendered on first request.
func New(result *pipeline.Result, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{
		network: result.Network,
		graph:   result.Graph,
		summary: result.Summary,
		dot:     opts.DOT,
		logger:  opts.Logger,
	}
	if svg, ok := result.Artifacts[pipeline.FormatSVG]; ok {
		s.svgOnce.Do(func() { s.svg = svg })
	}

	s.handler = s.routes(opts.Metrics)
	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

func (s *Server) routes(metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/version", s.handleVersion)
	r.Get("/network.json", s.handleNetworkJSON)
	r.Get("/network.dot", s.handleNetworkDOT)
	r.Get("/network.svg", s.handleNetworkSVG)
	r.Get("/stats", s.handleStats)
	r.Get("/vertices/{name}", s.handleVertex)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	return r
}

// Run listens until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// renderSVG renders the network once and reuses the result. The first
// caller's cancellation does not poison the shared result.
func (s *Server) renderSVG(ctx context.Context) ([]byte, error) {
	s.svgOnce.Do(func() {
		s.svg, s.svgErr = export.RenderSVG(context.WithoutCancel(ctx), export.ToDOT(s.graph, s.dot))
	})
	return s.svg, s.svgErr
}
