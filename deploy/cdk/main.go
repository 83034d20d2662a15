package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
)

func main() {
	defer jsii.Close()

	app := awscdk.NewApp(nil)
	cfg := DefaultConfig()

	if name := os.Getenv("SENTISERVER_TABLE_NAME"); name != "" {
		cfg.TableName = name
	}
	if name := os.Getenv("SENTISERVER_STREAM_NAME"); name != "" {
		cfg.StreamName = name
	}
	if lang := os.Getenv("SENTISERVER_LANGUAGE_CODE"); lang != "" {
		cfg.LanguageCode = lang
	}
	cfg.DestroyOnDelete = os.Getenv("SENTISERVER_DESTROY_ON_DELETE") == "true"

	stackName := "SentiserverStack"
	if name := os.Getenv("SENTISERVER_STACK_NAME"); name != "" {
		stackName = name
	}

	NewSentiserverStack(app, stackName, cfg)
	app.Synth(nil)
}
