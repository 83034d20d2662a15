package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/feedworks/sentiserver/internal/ingest"
	"github.com/feedworks/sentiserver/internal/metrics"
)

type submission struct {
	Text string `json:"text"`
}

// SubmitPost accepts a text submission and returns the pending post. The
// response comes back before classification; clients poll GetPost.
func (h *Handlers) SubmitPost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, "No data provided", err)
		return
	}
	if len(body) == 0 {
		h.writeMessage(w, http.StatusBadRequest, "No data provided", nil)
		return
	}

	var sub submission
	if err := json.Unmarshal(body, &sub); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if sub.Text == "" {
		h.writeMessage(w, http.StatusBadRequest, "No text provided", nil)
		return
	}

	post, err := h.submitter.Submit(r.Context(), sub.Text)
	if err != nil {
		if errors.Is(err, ingest.ErrEmptyText) {
			h.writeMessage(w, http.StatusBadRequest, "No text provided", nil)
			return
		}
		h.writeMessage(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	_ = json.NewEncoder(w).Encode(post)
}

// GetPost returns a post by the id query parameter, distinguishing a
// malformed request from an unknown id.
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if len(query) == 0 {
		h.writeMessage(w, http.StatusBadRequest, "Missing path parameters", nil)
		return
	}

	id := query.Get("id")
	if id == "" {
		h.writeMessage(w, http.StatusBadRequest, "Missing post ID", nil)
		return
	}

	post, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeMessage(w, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if post == nil {
		h.writeMessage(w, http.StatusNotFound, "Post not found", nil)
		return
	}

	metrics.LookupsServed.Add(1)
	_ = json.NewEncoder(w).Encode(post)
}
