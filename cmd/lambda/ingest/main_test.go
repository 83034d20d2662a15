package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedworks/sentiserver/internal/ingest"
	intlambda "github.com/feedworks/sentiserver/internal/lambda"
	memstore "github.com/feedworks/sentiserver/internal/store/memory"
	"github.com/feedworks/sentiserver/internal/stream"
	"github.com/feedworks/sentiserver/pkg/types"
)

type failingStream struct{ err error }

func (f failingStream) Append(context.Context, string, []byte) error { return f.err }

func testDeps(str stream.Stream) (*intlambda.Deps, *memstore.PostStore) {
	st := memstore.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &intlambda.Deps{
		Store:     st,
		Stream:    str,
		Submitter: ingest.NewSubmitter(st, str, logger),
		Logger:    logger,
	}, st
}

func TestHandleIngest_EmptyBody(t *testing.T) {
	d, st := testDeps(stream.NewMemory(8))

	resp, err := handleIngest(context.Background(), d, events.APIGatewayProxyRequest{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No data provided", resp.Body)
	assert.Equal(t, 0, st.Len())
}

func TestHandleIngest_InvalidJSON(t *testing.T) {
	d, st := testDeps(stream.NewMemory(8))

	resp, err := handleIngest(context.Background(), d, events.APIGatewayProxyRequest{Body: "{not json"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", resp.Body)
	assert.Equal(t, 0, st.Len())
}

func TestHandleIngest_EmptyText(t *testing.T) {
	d, st := testDeps(stream.NewMemory(8))

	resp, err := handleIngest(context.Background(), d, events.APIGatewayProxyRequest{Body: `{"text":""}`})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No text provided", resp.Body)
	assert.Equal(t, 0, st.Len())
}

func TestHandleIngest_Success(t *testing.T) {
	str := stream.NewMemory(8)
	d, st := testDeps(str)

	resp, err := handleIngest(context.Background(), d, events.APIGatewayProxyRequest{Body: `{"text":"great stuff"}`})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])

	var post types.Post
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &post))
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "great stuff", post.Text)
	assert.Equal(t, types.StatusPending, post.Status)
	assert.Nil(t, post.Sentiment)

	stored, err := st.Get(context.Background(), post.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	select {
	case record := <-str.Records():
		var streamed types.Post
		require.NoError(t, json.Unmarshal(record, &streamed))
		assert.Equal(t, post.ID, streamed.ID)
	default:
		t.Fatal("no record appended to stream")
	}
}

func TestHandleIngest_StreamFailure(t *testing.T) {
	d, st := testDeps(failingStream{err: errors.New("throughput exceeded")})

	resp, err := handleIngest(context.Background(), d, events.APIGatewayProxyRequest{Body: `{"text":"hello"}`})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal Server Error", resp.Body)

	// The post was written before the stream append failed; it stays pending.
	assert.Equal(t, 1, st.Len())
}
