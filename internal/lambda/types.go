// Package lambda provides shared types and initialization for Lambda handlers.
package lambda

// CORSHeaders are attached to every API response.
// Edit these to restrict the origin of requests.
var CORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":      "*",
	"Access-Control-Allow-Credentials": "true",
}

// WorkerResponse is the envelope the stream infrastructure expects from the
// analyzer invocation: 200 when the whole batch succeeded, 500 to request
// redelivery.
type WorkerResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}
