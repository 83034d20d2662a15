// Package server implements the sentiserver HTTP API used in serve mode.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/feedworks/sentiserver/internal/ingest"
	"github.com/feedworks/sentiserver/internal/store"
)

// Server is the sentiserver HTTP API server.
type Server struct {
	submitter *ingest.Submitter
	store     store.Store
	router    chi.Router
	addr      string
	srv       *http.Server
}

// New creates a new HTTP server.
func New(addr string, submitter *ingest.Submitter, st store.Store) *Server {
	s := &Server{
		submitter: submitter,
		store:     st,
		addr:      addr,
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))
	r.Use(CORSMiddleware)

	s.router = r
	s.registerRoutes(r)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s.srv.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
