// Package types defines the public domain types for the sentiserver pipeline.
package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status represents the processing lifecycle state of a post.
type Status string

// Status values. A post moves pending -> processed exactly once; no other
// transitions exist.
const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
)

// Sentiment is the categorical label assigned by the classifier.
type Sentiment string

// Sentiment values enumerate the classifier's possible labels.
const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentMixed    Sentiment = "MIXED"
)

// Valid reports whether s is one of the known sentiment labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed:
		return true
	}
	return false
}

// SentimentScore is the per-class confidence breakdown returned by the
// classifier. Field names match the classifier's response shape, which is
// also how the breakdown is serialized into the stored record.
type SentimentScore struct {
	Positive float64 `json:"Positive"`
	Negative float64 `json:"Negative"`
	Neutral  float64 `json:"Neutral"`
	Mixed    float64 `json:"Mixed"`
}

// Encode serializes the score breakdown to the JSON string form stored in
// the sentiment_score attribute.
func (s SentimentScore) Encode() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding sentiment score: %w", err)
	}
	return string(b), nil
}

// DecodeScore parses a stored sentiment_score string back into a breakdown.
func DecodeScore(encoded string) (SentimentScore, error) {
	var s SentimentScore
	if err := json.Unmarshal([]byte(encoded), &s); err != nil {
		return SentimentScore{}, fmt.Errorf("decoding sentiment score: %w", err)
	}
	return s, nil
}

// Result is a classification outcome: the label plus its confidence breakdown.
type Result struct {
	Sentiment Sentiment
	Score     SentimentScore
}

// Post is the user-submitted text item tracked through its analysis
// lifecycle. Sentiment and SentimentScore are nil until the post is
// processed, and are only ever set together through ApplyResult.
type Post struct {
	ID             string     `json:"id" dynamodbav:"id"`
	Text           string     `json:"text" dynamodbav:"text"`
	Status         Status     `json:"status" dynamodbav:"status"`
	Timestamp      time.Time  `json:"timestamp" dynamodbav:"timestamp"`
	UpdatedAt      time.Time  `json:"updated_at" dynamodbav:"updated_at"`
	Sentiment      *Sentiment `json:"sentiment" dynamodbav:"sentiment"`
	SentimentScore *string    `json:"sentiment_score" dynamodbav:"sentiment_score"`
}

// NewPost builds a pending post with both time fields set to now.
func NewPost(id, text string, now time.Time) Post {
	return Post{
		ID:        id,
		Text:      text,
		Status:    StatusPending,
		Timestamp: now,
		UpdatedAt: now,
	}
}

// ApplyResult records a classification outcome on the post. It is the single
// mutation path for the sentiment fields, so sentiment and sentiment_score
// are always both nil or both populated. Applying the same result again
// yields the same state apart from UpdatedAt.
func (p *Post) ApplyResult(res Result, now time.Time) error {
	if !res.Sentiment.Valid() {
		return fmt.Errorf("invalid sentiment %q", res.Sentiment)
	}
	encoded, err := res.Score.Encode()
	if err != nil {
		return err
	}
	sentiment := res.Sentiment
	p.Sentiment = &sentiment
	p.SentimentScore = &encoded
	p.Status = StatusProcessed
	p.UpdatedAt = now
	return nil
}

// Processed reports whether the post has been classified.
func (p *Post) Processed() bool {
	return p.Status == StatusProcessed
}
