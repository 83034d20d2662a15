// Package handlers implements HTTP request handlers for the sentiserver API.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/feedworks/sentiserver/internal/ingest"
	"github.com/feedworks/sentiserver/internal/store"
)

// Handlers contains all HTTP handler dependencies.
type Handlers struct {
	submitter *ingest.Submitter
	store     store.Store
	logger    *slog.Logger
}

// New creates a new Handlers instance.
func New(submitter *ingest.Submitter, st store.Store) *Handlers {
	return &Handlers{
		submitter: submitter,
		store:     st,
		logger:    slog.Default(),
	}
}

// SetLogger overrides the default logger.
func (h *Handlers) SetLogger(l *slog.Logger) {
	if l != nil {
		h.logger = l
	}
}

// writeMessage logs any internal error and returns a JSON message matching
// the Lambda response envelope.
func (h *Handlers) writeMessage(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		h.logger.Error(msg, "error", err, "status", status)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
