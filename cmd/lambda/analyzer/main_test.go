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

	"github.com/feedworks/sentiserver/internal/analyzer"
	intlambda "github.com/feedworks/sentiserver/internal/lambda"
	memstore "github.com/feedworks/sentiserver/internal/store/memory"
	"github.com/feedworks/sentiserver/pkg/types"
)

type stubClassifier struct {
	result types.Result
	err    error
}

func (s stubClassifier) Detect(context.Context, string) (types.Result, error) {
	return s.result, s.err
}

func testDeps(st *memstore.PostStore, cl stubClassifier) *intlambda.Deps {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &intlambda.Deps{
		Store:    st,
		Analyzer: analyzer.New(st, cl, nil, logger),
		Logger:   logger,
	}
}

func kinesisEvent(t *testing.T, payloads ...[]byte) events.KinesisEvent {
	t.Helper()
	event := events.KinesisEvent{}
	for _, p := range payloads {
		event.Records = append(event.Records, events.KinesisEventRecord{
			Kinesis: events.KinesisRecord{Data: p},
		})
	}
	return event
}

func pendingRecord(t *testing.T, st *memstore.PostStore, id, text string) []byte {
	t.Helper()
	post := types.NewPost(id, text, time.Now())
	require.NoError(t, st.Create(context.Background(), post))
	payload, err := json.Marshal(post)
	require.NoError(t, err)
	return payload
}

func TestHandleRecords_Success(t *testing.T) {
	st := memstore.New()
	cl := stubClassifier{result: types.Result{
		Sentiment: types.SentimentPositive,
		Score:     types.SentimentScore{Positive: 0.9, Negative: 0.02, Neutral: 0.05, Mixed: 0.03},
	}}
	d := testDeps(st, cl)

	event := kinesisEvent(t,
		pendingRecord(t, st, "post-1", "love it"),
		pendingRecord(t, st, "post-2", "love it more"),
	)

	resp, err := handleRecords(context.Background(), d, event)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `"Success"`, resp.Body)

	for _, id := range []string{"post-1", "post-2"} {
		post, err := st.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, types.StatusProcessed, post.Status)
		require.NotNil(t, post.Sentiment)
		assert.Equal(t, types.SentimentPositive, *post.Sentiment)
		require.NotNil(t, post.SentimentScore)
		score, err := types.DecodeScore(*post.SentimentScore)
		require.NoError(t, err)
		assert.Equal(t, 0.9, score.Positive)
	}
}

func TestHandleRecords_PartialFailure(t *testing.T) {
	st := memstore.New()
	cl := stubClassifier{result: types.Result{
		Sentiment: types.SentimentNeutral,
		Score:     types.SentimentScore{Neutral: 1},
	}}
	d := testDeps(st, cl)

	event := kinesisEvent(t,
		pendingRecord(t, st, "post-1", "fine"),
		[]byte("not a post"),
		pendingRecord(t, st, "post-2", "also fine"),
	)

	resp, err := handleRecords(context.Background(), d, event)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, `"1 of 3 records failed"`, resp.Body)

	// The good records around the bad one were still processed.
	for _, id := range []string{"post-1", "post-2"} {
		post, err := st.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, types.StatusProcessed, post.Status)
	}
}

func TestHandleRecords_EmptyBatch(t *testing.T) {
	d := testDeps(memstore.New(), stubClassifier{})

	resp, err := handleRecords(context.Background(), d, events.KinesisEvent{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `"Success"`, resp.Body)
}
