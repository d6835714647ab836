// Package api implements the Phylograph HTTP API.
//
// The API exposes the same pipeline the CLI uses: a render endpoint that
// turns a posted Newick or JSON document into an artifact, and a graphs
// collection backed by a [store.Store] for saving and retrieving named
// graphs. All error responses are JSON bodies carrying a machine-readable
// error code.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arborlab/phylograph/pkg/pipeline"
	"github.com/arborlab/phylograph/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// Server serves the Phylograph HTTP API.
type Server struct {
	router *chi.Mux
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a Server using the given runner for rendering and store for
// the graphs collection. A nil logger falls back to the default logger.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		router: chi.NewRouter(),
		runner: runner,
		store:  st,
		logger: logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/render", s.handleRender)
	s.router.Route("/graphs", func(r chi.Router) {
		r.Get("/", s.handleListGraphs)
		r.Post("/", s.handleSaveGraph)
		r.Get("/{id}", s.handleGetGraph)
		r.Delete("/{id}", s.handleDeleteGraph)
	})
}

// Handler returns the root handler for the API, for mounting or testing.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves the API on addr until ctx is cancelled, then
// shuts down gracefully, draining in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("api listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
