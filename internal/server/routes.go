package server

import (
	"github.com/go-chi/chi/v5"

	"github.com/feedworks/sentiserver/internal/server/handlers"
)

func (s *Server) registerRoutes(r chi.Router) {
	h := handlers.New(s.submitter, s.store)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Posts: submit, then poll by id until processed.
		r.Post("/posts", h.SubmitPost)
		r.Get("/posts", h.GetPost)
	})
}
