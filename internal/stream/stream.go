// Package stream defines the ordered, at-least-once event stream that
// decouples ingest from classification.
package stream

import "context"

// Stream is an append-only record channel. Records sharing a key are
// delivered in append order; the stream is a trigger, never the source of
// truth.
type Stream interface {
	// Append writes one record under the given partition/ordering key.
	Append(ctx context.Context, key string, payload []byte) error
}
