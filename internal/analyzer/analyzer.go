// Package analyzer implements the classification worker: it decodes stream
// records, classifies their text, and writes the result back to the store.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/feedworks/sentiserver/internal/alert"
	"github.com/feedworks/sentiserver/internal/classifier"
	"github.com/feedworks/sentiserver/internal/metrics"
	"github.com/feedworks/sentiserver/internal/store"
	"github.com/feedworks/sentiserver/pkg/types"
)

// Analyzer processes batches of stream records.
type Analyzer struct {
	store      store.Store
	classifier classifier.Classifier
	alertFn    func(alert.Alert)
	logger     *slog.Logger
	now        func() time.Time
}

// New creates an Analyzer. alertFn may be nil.
func New(st store.Store, cl classifier.Classifier, alertFn func(alert.Alert), logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		store:      st,
		classifier: cl,
		alertFn:    alertFn,
		logger:     logger,
		now:        time.Now,
	}
}

// RecordError ties a failed record to its position in the batch.
type RecordError struct {
	Index int
	Err   error
}

// BatchResult summarizes one batch invocation.
type BatchResult struct {
	Processed int
	Failed    []RecordError
}

// OK reports whether every record in the batch succeeded.
func (r BatchResult) OK() bool { return len(r.Failed) == 0 }

// ProcessBatch classifies every record in the batch in stream order.
// Failures are isolated per record: a bad record never stops the ones after
// it. The caller reports batch failure when any record failed; redelivery
// then reprocesses the whole batch, and the idempotent store update absorbs
// the repeats.
func (a *Analyzer) ProcessBatch(ctx context.Context, payloads [][]byte) BatchResult {
	var result BatchResult
	for i, payload := range payloads {
		if err := a.ProcessRecord(ctx, payload); err != nil {
			metrics.AnalyzeFailures.Add(1)
			a.logger.Error("record processing failed", "index", i, "error", err)
			if a.alertFn != nil {
				a.alertFn(alert.Alert{
					Level:     alert.LevelError,
					Message:   err.Error(),
					Timestamp: a.now(),
				})
			}
			result.Failed = append(result.Failed, RecordError{Index: i, Err: err})
			continue
		}
		result.Processed++
	}
	return result
}

// ProcessRecord decodes one stream record, classifies its text, and applies
// the result to the stored post.
func (a *Analyzer) ProcessRecord(ctx context.Context, payload []byte) error {
	var post types.Post
	if err := json.Unmarshal(payload, &post); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	if post.ID == "" {
		return fmt.Errorf("record missing post id")
	}

	result, err := a.classifier.Detect(ctx, post.Text)
	if err != nil {
		return fmt.Errorf("classifying post %s: %w", post.ID, err)
	}

	if err := a.store.ApplyResult(ctx, post.ID, result, a.now()); err != nil {
		return fmt.Errorf("storing result for post %s: %w", post.ID, err)
	}

	metrics.RecordsAnalyzed.Add(1)
	a.logger.Info("post processed", "post", post.ID, "sentiment", result.Sentiment)
	return nil
}
