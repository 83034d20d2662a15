package lambda

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_RequiresTableName(t *testing.T) {
	t.Setenv("TABLE_NAME", "")
	t.Setenv("AWS_REGION", "us-east-1")

	_, err := Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TABLE_NAME")
}

func TestInit_RequiresRegion(t *testing.T) {
	t.Setenv("TABLE_NAME", "posts")
	t.Setenv("AWS_REGION", "")

	_, err := Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AWS_REGION")
}

func TestInit_StreamOptional(t *testing.T) {
	t.Setenv("TABLE_NAME", "posts")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("STREAM_NAME", "")
	t.Setenv("ALERT_TOPIC_ARN", "")

	d, err := Init(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, d.Store)
	assert.NotNil(t, d.Analyzer)
	assert.Nil(t, d.Submitter, "no submitter without STREAM_NAME")
}

func TestInit_WithStream(t *testing.T) {
	t.Setenv("TABLE_NAME", "posts")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("STREAM_NAME", "posts-stream")

	d, err := Init(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, d.Stream)
	assert.NotNil(t, d.Submitter)
}
