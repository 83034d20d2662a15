// Package store defines the persistence boundary for posts.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/feedworks/sentiserver/pkg/types"
)

// ErrPostExists is returned by Create when the id is already taken.
var ErrPostExists = errors.New("post already exists")

// Store is the durable record store holding one row per post, keyed by id.
// The store is the single source of truth; the stream carries an ephemeral
// copy used only to trigger processing.
type Store interface {
	// Create persists a new post. It must not overwrite an existing id;
	// a collision returns ErrPostExists.
	Create(ctx context.Context, post types.Post) error

	// Get returns the post with the given id, or nil when no such post
	// exists. A nil post with a nil error is the not-found case.
	Get(ctx context.Context, id string) (*types.Post, error)

	// ApplyResult overwrites sentiment, status, updated_at and
	// sentiment_score for the given id in one atomic write. The update is
	// unconditional on prior state, which makes reprocessing idempotent.
	// Text, timestamp and id are never rewritten.
	ApplyResult(ctx context.Context, id string, res types.Result, updatedAt time.Time) error

	// Ping checks connectivity.
	Ping(ctx context.Context) error
}
