// Package memory implements an in-process post store for serve mode and tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/feedworks/sentiserver/internal/store"
	"github.com/feedworks/sentiserver/pkg/types"
)

// Compile-time interface satisfaction check.
var _ store.Store = (*PostStore)(nil)

// PostStore is a map-backed Store. All methods are safe for concurrent use.
type PostStore struct {
	mu    sync.RWMutex
	posts map[string]types.Post
}

// New creates an empty in-memory store.
func New() *PostStore {
	return &PostStore{posts: make(map[string]types.Post)}
}

// Create persists a new post, refusing to overwrite an existing id.
func (p *PostStore) Create(_ context.Context, post types.Post) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.posts[post.ID]; ok {
		return fmt.Errorf("post %s: %w", post.ID, store.ErrPostExists)
	}
	p.posts[post.ID] = post
	return nil
}

// Get retrieves a post by id. Returns (nil, nil) when the id is unknown.
func (p *PostStore) Get(_ context.Context, id string) (*types.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	post, ok := p.posts[id]
	if !ok {
		return nil, nil
	}
	return &post, nil
}

// ApplyResult overwrites the sentiment fields, status and updated_at for a
// post. Unconditional on prior state, like the DynamoDB update it mirrors.
func (p *PostStore) ApplyResult(_ context.Context, id string, res types.Result, updatedAt time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	post, ok := p.posts[id]
	if !ok {
		return fmt.Errorf("post %s not found", id)
	}
	if err := post.ApplyResult(res, updatedAt); err != nil {
		return err
	}
	p.posts[id] = post
	return nil
}

// Ping always succeeds.
func (p *PostStore) Ping(_ context.Context) error { return nil }

// Len reports the number of stored posts. Test helper.
func (p *PostStore) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.posts)
}
