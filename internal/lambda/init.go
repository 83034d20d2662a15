package lambda

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/feedworks/sentiserver/internal/alert"
	"github.com/feedworks/sentiserver/internal/analyzer"
	"github.com/feedworks/sentiserver/internal/classifier"
	"github.com/feedworks/sentiserver/internal/ingest"
	"github.com/feedworks/sentiserver/internal/store"
	ddbstore "github.com/feedworks/sentiserver/internal/store/dynamodb"
	"github.com/feedworks/sentiserver/internal/stream"
)

// Deps holds shared dependencies for Lambda handlers.
type Deps struct {
	Store     store.Store
	Stream    stream.Stream
	Submitter *ingest.Submitter
	Analyzer  *analyzer.Analyzer
	AlertFn   func(alert.Alert)
	Logger    *slog.Logger
}

var (
	deps     *Deps
	depsOnce sync.Once
	depsErr  error
)

// GetDeps returns process-wide dependencies, initializing them on first use.
func GetDeps() (*Deps, error) {
	depsOnce.Do(func() {
		deps, depsErr = Init(context.Background())
	})
	return deps, depsErr
}

// Init creates shared dependencies from environment variables.
// Reads: TABLE_NAME, AWS_REGION, STREAM_NAME, ALERT_TOPIC_ARN,
// COMPREHEND_LANGUAGE.
func Init(ctx context.Context) (*Deps, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	tableName := os.Getenv("TABLE_NAME")
	region := os.Getenv("AWS_REGION")
	if tableName == "" {
		return nil, fmt.Errorf("TABLE_NAME environment variable required")
	}
	if region == "" {
		return nil, fmt.Errorf("AWS_REGION environment variable required")
	}

	st, err := ddbstore.New(&ddbstore.Config{
		TableName: tableName,
		Region:    region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating DynamoDB store: %w", err)
	}

	// The stream is only needed by the ingest handler; the others run
	// without it.
	var str stream.Stream
	var submitter *ingest.Submitter
	if streamName := os.Getenv("STREAM_NAME"); streamName != "" {
		kin, err := stream.NewKinesis(streamName, region)
		if err != nil {
			return nil, fmt.Errorf("creating Kinesis stream: %w", err)
		}
		str = kin
		submitter = ingest.NewSubmitter(st, str, logger)
	}

	cl, err := classifier.NewComprehend(region, os.Getenv("COMPREHEND_LANGUAGE"))
	if err != nil {
		return nil, fmt.Errorf("creating Comprehend classifier: %w", err)
	}
	breaker := classifier.NewBreaker(cl, classifier.BreakerSettings{})

	dispatcher := alert.NewDispatcher(logger)
	dispatcher.AddSink(alert.NewConsoleSink(logger))
	if topicARN := os.Getenv("ALERT_TOPIC_ARN"); topicARN != "" {
		snsSink, err := alert.NewSNSSink(topicARN)
		if err != nil {
			return nil, fmt.Errorf("creating SNS sink: %w", err)
		}
		dispatcher.AddSink(snsSink)
	}
	alertFn := dispatcher.AlertFunc()

	return &Deps{
		Store:     st,
		Stream:    str,
		Submitter: submitter,
		Analyzer:  analyzer.New(st, breaker, alertFn, logger),
		AlertFn:   alertFn,
		Logger:    logger,
	}, nil
}
