package main

// StackConfig holds configuration for the sentiserver CDK stack.
type StackConfig struct {
	TableName        string
	StreamName       string
	ShardCount       float64
	MemorySize       float64
	Timeout          float64
	LambdaDistDir    string
	LanguageCode     string
	BatchSize        float64
	LogRetentionDays float64
	DestroyOnDelete  bool
}

// DefaultConfig returns a StackConfig with sensible defaults.
func DefaultConfig() StackConfig {
	return StackConfig{
		TableName:        "sentiserver",
		StreamName:       "sentiserver-posts",
		ShardCount:       1,
		MemorySize:       256,
		Timeout:          30,
		LambdaDistDir:    "../dist/lambda",
		LanguageCode:     "en",
		BatchSize:        25,
		LogRetentionDays: 7,
	}
}
