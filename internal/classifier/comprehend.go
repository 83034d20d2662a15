package classifier

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	comprehendtypes "github.com/aws/aws-sdk-go-v2/service/comprehend/types"

	"github.com/feedworks/sentiserver/pkg/types"
)

// DefaultLanguageCode is used when no language is configured.
const DefaultLanguageCode = "en"

// Compile-time interface satisfaction check.
var _ Classifier = (*Comprehend)(nil)

// ComprehendAPI is the subset of the Comprehend client used for detection.
type ComprehendAPI interface {
	DetectSentiment(ctx context.Context, params *comprehend.DetectSentimentInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error)
}

// Comprehend classifies text with the AWS Comprehend DetectSentiment API.
type Comprehend struct {
	client   ComprehendAPI
	language string
}

// ComprehendOption configures a Comprehend classifier.
type ComprehendOption func(*Comprehend)

// WithComprehendClient sets a custom client (useful for testing).
func WithComprehendClient(c ComprehendAPI) ComprehendOption {
	return func(cl *Comprehend) { cl.client = c }
}

// NewComprehend creates a Comprehend-backed classifier.
func NewComprehend(region, language string, opts ...ComprehendOption) (*Comprehend, error) {
	if language == "" {
		language = DefaultLanguageCode
	}
	cl := &Comprehend{language: language}
	for _, o := range opts {
		o(cl)
	}
	if cl.client == nil {
		var cfgOpts []func(*awsconfig.LoadOptions) error
		if region != "" {
			cfgOpts = append(cfgOpts, awsconfig.WithRegion(region))
		}
		cfg, err := awsconfig.LoadDefaultConfig(context.Background(), cfgOpts...)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		cl.client = comprehend.NewFromConfig(cfg)
	}
	return cl, nil
}

// Detect classifies the text and maps the service response onto the domain
// result type.
func (c *Comprehend) Detect(ctx context.Context, text string) (types.Result, error) {
	out, err := c.client.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		Text:         aws.String(text),
		LanguageCode: comprehendtypes.LanguageCode(c.language),
	})
	if err != nil {
		return types.Result{}, fmt.Errorf("detect sentiment: %w", err)
	}

	sentiment := types.Sentiment(out.Sentiment)
	if !sentiment.Valid() {
		return types.Result{}, fmt.Errorf("unexpected sentiment label %q", out.Sentiment)
	}

	var score types.SentimentScore
	if s := out.SentimentScore; s != nil {
		score = types.SentimentScore{
			Positive: float64(aws.ToFloat32(s.Positive)),
			Negative: float64(aws.ToFloat32(s.Negative)),
			Neutral:  float64(aws.ToFloat32(s.Neutral)),
			Mixed:    float64(aws.ToFloat32(s.Mixed)),
		}
	}

	return types.Result{Sentiment: sentiment, Score: score}, nil
}
