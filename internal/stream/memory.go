package stream

import (
	"context"
	"fmt"
	"sync"
)

// Compile-time interface satisfaction check.
var _ Stream = (*Memory)(nil)

// Memory is a channel-backed stream for serve mode and tests. A single
// buffered channel gives the same single-ordering-lane semantics as the
// managed stream; consumers drain Records.
type Memory struct {
	ch   chan []byte
	done chan struct{}
	once sync.Once
}

// NewMemory creates an in-memory stream with the given buffer size.
func NewMemory(buffer int) *Memory {
	if buffer <= 0 {
		buffer = 256
	}
	return &Memory{
		ch:   make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// Append writes one record. The partition key is accepted for interface
// parity but unused: a single channel is one ordering lane.
func (m *Memory) Append(ctx context.Context, _ string, payload []byte) error {
	// Copy so callers may reuse the payload buffer.
	record := make([]byte, len(payload))
	copy(record, payload)

	select {
	case <-m.done:
		return fmt.Errorf("stream closed")
	case <-ctx.Done():
		return ctx.Err()
	case m.ch <- record:
		return nil
	}
}

// Records exposes the consumer side of the stream. The channel is never
// closed; consumers stop via their own context.
func (m *Memory) Records() <-chan []byte {
	return m.ch
}

// Close rejects further appends; buffered records remain readable.
func (m *Memory) Close() {
	m.once.Do(func() { close(m.done) })
}
