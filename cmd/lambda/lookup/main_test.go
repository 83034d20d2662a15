package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intlambda "github.com/feedworks/sentiserver/internal/lambda"
	memstore "github.com/feedworks/sentiserver/internal/store/memory"
	"github.com/feedworks/sentiserver/pkg/types"
)

func testDeps() (*intlambda.Deps, *memstore.PostStore) {
	st := memstore.New()
	return &intlambda.Deps{
		Store:  st,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, st
}

func lookupRequest(params map[string]string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{QueryStringParameters: params}
}

func message(t *testing.T, body string) string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m["message"]
}

func TestHandleLookup_MissingParameters(t *testing.T) {
	d, _ := testDeps()

	resp, err := handleLookup(context.Background(), d, lookupRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing path parameters", message(t, resp.Body))
}

func TestHandleLookup_MissingID(t *testing.T) {
	d, _ := testDeps()

	resp, err := handleLookup(context.Background(), d, lookupRequest(map[string]string{"other": "x"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing post ID", message(t, resp.Body))
}

func TestHandleLookup_NotFound(t *testing.T) {
	d, _ := testDeps()

	resp, err := handleLookup(context.Background(), d, lookupRequest(map[string]string{"id": "nope"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Post not found", message(t, resp.Body))
}

func TestHandleLookup_Found(t *testing.T) {
	d, st := testDeps()
	post := types.NewPost("post-1", "some text", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, st.Create(context.Background(), post))

	resp, err := handleLookup(context.Background(), d, lookupRequest(map[string]string{"id": "post-1"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])

	var got types.Post
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &got))
	assert.Equal(t, "post-1", got.ID)
	assert.Equal(t, types.StatusPending, got.Status)
	assert.Nil(t, got.Sentiment)
	assert.Nil(t, got.SentimentScore)
}
