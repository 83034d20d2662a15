// ingest Lambda accepts a post submission, persists it as pending, and
// appends it to the analysis stream. The caller gets the pending post back
// immediately; classification happens asynchronously.
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

type submission struct {
	Text string `json:"text"`
}

func respond(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    intlambda.CORSHeaders,
		Body:       body,
	}
}

// handleIngest validates the request and submits the text for analysis.
// Validation failures are client errors and create no record.
func handleIngest(ctx context.Context, d *intlambda.Deps, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.Body == "" {
		return respond(http.StatusBadRequest, "No data provided"), nil
	}

	var body submission
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return respond(http.StatusBadRequest, "Invalid request body"), nil
	}
	if body.Text == "" {
		return respond(http.StatusBadRequest, "No text provided"), nil
	}

	post, err := d.Submitter.Submit(ctx, body.Text)
	if err != nil {
		d.Logger.Error("submission failed", "error", err)
		return respond(http.StatusInternalServerError, "Internal Server Error"), nil
	}

	payload, err := json.Marshal(post)
	if err != nil {
		d.Logger.Error("marshaling response failed", "post", post.ID, "error", err)
		return respond(http.StatusInternalServerError, "Internal Server Error"), nil
	}
	return respond(http.StatusOK, string(payload)), nil
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	d, err := intlambda.GetDeps()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if d.Submitter == nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("STREAM_NAME environment variable required")
	}
	return handleIngest(ctx, d, req)
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	awslambda.Start(handler)
}
