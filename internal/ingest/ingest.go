// Package ingest implements post submission: validation, identity
// assignment, durable create, and stream append.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/feedworks/sentiserver/internal/metrics"
	"github.com/feedworks/sentiserver/internal/store"
	"github.com/feedworks/sentiserver/internal/stream"
	"github.com/feedworks/sentiserver/pkg/types"
)

// ErrEmptyText is returned for submissions with no text. It is a client
// error: no record is created and nothing is appended to the stream.
var ErrEmptyText = errors.New("text is required")

// Submitter accepts text submissions and starts their analysis lifecycle.
type Submitter struct {
	store  store.Store
	stream stream.Stream
	logger *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewSubmitter creates a Submitter over the given store and stream.
func NewSubmitter(st store.Store, str stream.Stream, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{
		store:  st,
		stream: str,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return ulid.Make().String() },
	}
}

// Submit validates the text, persists a pending post, and appends it to the
// stream keyed by the post id. The two side effects are deliberately not
// transactional: when the stream append fails after the store write, the
// post stays durably pending with no automatic remediation, and the caller
// sees the error.
func (s *Submitter) Submit(ctx context.Context, text string) (*types.Post, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	post := types.NewPost(s.newID(), text, s.now())

	if err := s.store.Create(ctx, post); err != nil {
		metrics.IngestFailures.Add(1)
		return nil, fmt.Errorf("creating post: %w", err)
	}

	payload, err := json.Marshal(post)
	if err != nil {
		metrics.IngestFailures.Add(1)
		return nil, fmt.Errorf("marshaling post %s: %w", post.ID, err)
	}

	if err := s.stream.Append(ctx, post.ID, payload); err != nil {
		metrics.IngestFailures.Add(1)
		s.logger.Error("stream append failed after store write; post stuck pending",
			"post", post.ID, "error", err)
		return nil, fmt.Errorf("appending post %s to stream: %w", post.ID, err)
	}

	metrics.PostsIngested.Add(1)
	s.logger.Info("post submitted", "post", post.ID)
	return &post, nil
}
