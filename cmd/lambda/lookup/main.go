// lookup Lambda returns a post by id. Clients poll it until the post leaves
// pending; the read has no side effects.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	intlambda "github.com/feedworks/sentiserver/internal/lambda"
	"github.com/feedworks/sentiserver/internal/metrics"
)

func respond(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    intlambda.CORSHeaders,
		Body:       body,
	}
}

func messageBody(msg string) string {
	b, _ := json.Marshal(map[string]string{"message": msg})
	return string(b)
}

// handleLookup distinguishes a malformed request (400) from an unknown id
// (404) and returns the post in whatever state it currently has.
func handleLookup(ctx context.Context, d *intlambda.Deps, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if len(req.QueryStringParameters) == 0 {
		return respond(http.StatusBadRequest, messageBody("Missing path parameters")), nil
	}

	id := req.QueryStringParameters["id"]
	if id == "" {
		return respond(http.StatusBadRequest, messageBody("Missing post ID")), nil
	}

	post, err := d.Store.Get(ctx, id)
	if err != nil {
		d.Logger.Error("lookup failed", "post", id, "error", err)
		return respond(http.StatusInternalServerError, messageBody("Internal server error")), nil
	}
	if post == nil {
		return respond(http.StatusNotFound, messageBody("Post not found")), nil
	}

	payload, err := json.Marshal(post)
	if err != nil {
		d.Logger.Error("marshaling response failed", "post", id, "error", err)
		return respond(http.StatusInternalServerError, messageBody("Internal server error")), nil
	}

	metrics.LookupsServed.Add(1)
	return respond(http.StatusOK, string(payload)), nil
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	d, err := intlambda.GetDeps()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return handleLookup(ctx, d, req)
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	awslambda.Start(handler)
}
