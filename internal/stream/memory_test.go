package stream

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_AppendPreservesOrder(t *testing.T) {
	m := NewMemory(4)

	require.NoError(t, m.Append(context.Background(), "a", []byte("one")))
	require.NoError(t, m.Append(context.Background(), "b", []byte("two")))

	assert.Equal(t, "one", string(<-m.Records()))
	assert.Equal(t, "two", string(<-m.Records()))
}

func TestMemory_AppendCopiesPayload(t *testing.T) {
	m := NewMemory(1)

	payload := []byte("original")
	require.NoError(t, m.Append(context.Background(), "a", payload))
	payload[0] = 'X'

	assert.Equal(t, "original", string(<-m.Records()))
}

func TestMemory_AppendAfterClose(t *testing.T) {
	m := NewMemory(1)
	m.Close()

	err := m.Append(context.Background(), "a", []byte("late"))
	assert.Error(t, err)
}

func TestMemory_AppendHonorsContext(t *testing.T) {
	m := NewMemory(1)
	require.NoError(t, m.Append(context.Background(), "a", []byte("fills the buffer")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Append(ctx, "a", []byte("blocked"))
	assert.ErrorIs(t, err, context.Canceled)
}
