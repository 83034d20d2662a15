// submit-post is a demo client for a deployed sentiserver stack: it submits
// one text for analysis and polls the lookup endpoint until the post is
// processed.
//
// Usage:
//
//	submit-post -api https://<api-id>.execute-api.<region>.amazonaws.com/prod "what a great day"
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/feedworks/sentiserver/pkg/types"
)

func main() {
	apiURL := flag.String("api", "", "base URL of the deployed API")
	timeout := flag.Duration("timeout", 30*time.Second, "how long to poll for a result")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *apiURL == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: submit-post -api <url> <text>")
		os.Exit(2)
	}

	post, err := submit(*apiURL, flag.Arg(0))
	if err != nil {
		logger.Error("submission failed", "error", err)
		os.Exit(1)
	}
	logger.Info("post submitted", "post", post.ID, "status", post.Status)

	deadline := time.Now().Add(*timeout)
	for time.Now().Before(deadline) {
		time.Sleep(time.Second)

		post, err = lookup(*apiURL, post.ID)
		if err != nil {
			logger.Error("lookup failed", "error", err)
			os.Exit(1)
		}
		if post.Processed() {
			logger.Info("post processed",
				"post", post.ID,
				"sentiment", *post.Sentiment,
				"score", *post.SentimentScore)
			return
		}
		logger.Info("still pending", "post", post.ID)
	}

	logger.Error("timed out waiting for classification", "post", post.ID)
	os.Exit(1)
}

func submit(apiURL, text string) (*types.Post, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(apiURL+"/posts", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodePost(resp)
}

func lookup(apiURL, id string) (*types.Post, error) {
	resp, err := http.Get(apiURL + "/posts?id=" + id)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodePost(resp)
}

func decodePost(resp *http.Response) (*types.Post, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, data)
	}

	var post types.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &post, nil
}
