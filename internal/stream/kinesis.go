package stream

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
)

// Compile-time interface satisfaction check.
var _ Stream = (*KinesisStream)(nil)

// KinesisAPI is the subset of the Kinesis client used by KinesisStream.
type KinesisAPI interface {
	PutRecord(ctx context.Context, params *kinesis.PutRecordInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error)
}

// KinesisStream appends records to an AWS Kinesis data stream.
type KinesisStream struct {
	client     KinesisAPI
	streamName string
}

// KinesisOption configures a KinesisStream.
type KinesisOption func(*KinesisStream)

// WithKinesisClient sets a custom Kinesis client (useful for testing).
func WithKinesisClient(c KinesisAPI) KinesisOption {
	return func(k *KinesisStream) { k.client = c }
}

// NewKinesis creates a stream producer for the named Kinesis stream.
func NewKinesis(streamName, region string, opts ...KinesisOption) (*KinesisStream, error) {
	if streamName == "" {
		return nil, fmt.Errorf("stream name required")
	}
	k := &KinesisStream{streamName: streamName}
	for _, o := range opts {
		o(k)
	}
	if k.client == nil {
		var cfgOpts []func(*awsconfig.LoadOptions) error
		if region != "" {
			cfgOpts = append(cfgOpts, awsconfig.WithRegion(region))
		}
		cfg, err := awsconfig.LoadDefaultConfig(context.Background(), cfgOpts...)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		k.client = kinesis.NewFromConfig(cfg)
	}
	return k, nil
}

// Append puts one record on the stream under the given partition key.
func (k *KinesisStream) Append(ctx context.Context, key string, payload []byte) error {
	_, err := k.client.PutRecord(ctx, &kinesis.PutRecordInput{
		StreamName:   &k.streamName,
		Data:         payload,
		PartitionKey: &key,
	})
	if err != nil {
		return fmt.Errorf("putting record to %s: %w", k.streamName, err)
	}
	return nil
}
