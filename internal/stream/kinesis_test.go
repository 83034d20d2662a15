package stream

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockKinesis struct {
	inputs []*kinesis.PutRecordInput
	err    error
}

func (m *mockKinesis) PutRecord(_ context.Context, input *kinesis.PutRecordInput, _ ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error) {
	m.inputs = append(m.inputs, input)
	return &kinesis.PutRecordOutput{}, m.err
}

func TestKinesisAppend(t *testing.T) {
	mock := &mockKinesis{}
	k, err := NewKinesis("posts-stream", "us-east-1", WithKinesisClient(mock))
	require.NoError(t, err)

	require.NoError(t, k.Append(context.Background(), "post-1", []byte(`{"id":"post-1"}`)))

	require.Len(t, mock.inputs, 1)
	input := mock.inputs[0]
	assert.Equal(t, "posts-stream", *input.StreamName)
	assert.Equal(t, "post-1", *input.PartitionKey)
	assert.JSONEq(t, `{"id":"post-1"}`, string(input.Data))
}

func TestKinesisAppend_WrapsError(t *testing.T) {
	mock := &mockKinesis{err: errors.New("throttled")}
	k, err := NewKinesis("posts-stream", "", WithKinesisClient(mock))
	require.NoError(t, err)

	err = k.Append(context.Background(), "post-1", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "posts-stream")
}

func TestNewKinesis_RequiresStreamName(t *testing.T) {
	_, err := NewKinesis("", "us-east-1", WithKinesisClient(&mockKinesis{}))
	assert.Error(t, err)
}
