// analyzer Lambda consumes batches of Kinesis records and classifies each
// post's text, updating the store record to processed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	intlambda "github.com/feedworks/sentiserver/internal/lambda"
)

// handleRecords runs the batch through the analyzer. Every record is
// attempted; a 500 response asks the stream infrastructure to redeliver the
// batch, which the idempotent store update makes safe.
func handleRecords(ctx context.Context, d *intlambda.Deps, event events.KinesisEvent) (intlambda.WorkerResponse, error) {
	payloads := make([][]byte, 0, len(event.Records))
	for _, record := range event.Records {
		payloads = append(payloads, record.Kinesis.Data)
	}

	result := d.Analyzer.ProcessBatch(ctx, payloads)
	if !result.OK() {
		body, _ := json.Marshal(fmt.Sprintf("%d of %d records failed", len(result.Failed), len(payloads)))
		return intlambda.WorkerResponse{StatusCode: http.StatusInternalServerError, Body: string(body)}, nil
	}

	body, _ := json.Marshal("Success")
	return intlambda.WorkerResponse{StatusCode: http.StatusOK, Body: string(body)}, nil
}

func handler(ctx context.Context, event events.KinesisEvent) (intlambda.WorkerResponse, error) {
	d, err := intlambda.GetDeps()
	if err != nil {
		return intlambda.WorkerResponse{}, err
	}
	return handleRecords(ctx, d, event)
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	awslambda.Start(handler)
}
