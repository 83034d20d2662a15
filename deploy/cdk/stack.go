package main

import (
	"path/filepath"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awskinesis"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambdaeventsources"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

func NewSentiserverStack(scope constructs.Construct, id string, cfg StackConfig) awscdk.Stack {
	stack := awscdk.NewStack(scope, &id, nil)

	// 3a. DynamoDB Table
	table := awsdynamodb.NewTableV2(stack, jsii.String("Table"), &awsdynamodb.TablePropsV2{
		TableName: jsii.String(cfg.TableName),
		PartitionKey: &awsdynamodb.Attribute{
			Name: jsii.String("id"),
			Type: awsdynamodb.AttributeType_STRING,
		},
		Billing:       awsdynamodb.Billing_OnDemand(nil),
		RemovalPolicy: removalPolicy(cfg.DestroyOnDelete),
	})

	// 3b. Kinesis Stream
	stream := awskinesis.NewStream(stack, jsii.String("PostStream"), &awskinesis.StreamProps{
		StreamName: jsii.String(cfg.StreamName),
		ShardCount: jsii.Number(cfg.ShardCount),
	})

	// 3c. SNS Topic
	topic := awssns.NewTopic(stack, jsii.String("AlertTopic"), &awssns.TopicProps{
		TopicName: jsii.String(cfg.TableName + "-alerts"),
	})

	// Common Lambda props
	commonEnv := &map[string]*string{
		"TABLE_NAME":          table.TableName(),
		"COMPREHEND_LANGUAGE": jsii.String(cfg.LanguageCode),
	}

	timeout := awscdk.Duration_Seconds(jsii.Number(cfg.Timeout))
	memorySize := jsii.Number(cfg.MemorySize)
	logRetention := logRetentionDays(cfg.LogRetentionDays)

	makeFn := func(name string, env *map[string]*string) awslambda.Function {
		return awslambda.NewFunction(stack, jsii.String(name), &awslambda.FunctionProps{
			FunctionName: jsii.String(cfg.TableName + "-" + name),
			Runtime:      awslambda.Runtime_PROVIDED_AL2023(),
			Handler:      jsii.String("bootstrap"),
			Code:         awslambda.Code_FromAsset(jsii.String(filepath.Join(cfg.LambdaDistDir, name)), nil),
			Architecture: awslambda.Architecture_ARM_64(),
			MemorySize:   memorySize,
			Timeout:      timeout,
			Environment:  env,
			LogRetention: logRetention,
		})
	}

	// 3d. Lambda Functions
	ingestEnv := &map[string]*string{
		"TABLE_NAME":  table.TableName(),
		"STREAM_NAME": stream.StreamName(),
	}
	ingestFn := makeFn("ingest", ingestEnv)
	lookupFn := makeFn("lookup", commonEnv)

	analyzerEnv := &map[string]*string{
		"TABLE_NAME":          table.TableName(),
		"COMPREHEND_LANGUAGE": jsii.String(cfg.LanguageCode),
		"ALERT_TOPIC_ARN":     topic.TopicArn(),
	}
	analyzerFn := makeFn("analyzer", analyzerEnv)

	// 3e. IAM Grants

	// DynamoDB: write for ingest, read-only for lookup, update for analyzer
	table.GrantWriteData(ingestFn)
	table.GrantReadData(lookupFn)
	table.GrantReadWriteData(analyzerFn)

	// Kinesis: ingest produces, analyzer consumes via the event source
	stream.GrantWrite(ingestFn)

	// SNS: publish for analyzer alerts
	topic.GrantPublish(analyzerFn)

	// Comprehend has no resource-level permissions
	analyzerFn.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions:   &[]*string{jsii.String("comprehend:DetectSentiment")},
		Resources: &[]*string{jsii.String("*")},
	}))

	// 3f. Event Source Mapping: Kinesis -> analyzer
	analyzerFn.AddEventSource(awslambdaeventsources.NewKinesisEventSource(stream, &awslambdaeventsources.KinesisEventSourceProps{
		StartingPosition: awslambda.StartingPosition_LATEST,
		BatchSize:        jsii.Number(cfg.BatchSize),
	}))

	// 3g. REST API: POST /posts -> ingest, GET /posts -> lookup
	api := awsapigateway.NewRestApi(stack, jsii.String("Api"), &awsapigateway.RestApiProps{
		RestApiName: jsii.String(cfg.TableName + "-api"),
	})
	posts := api.Root().AddResource(jsii.String("posts"), nil)
	posts.AddMethod(jsii.String("POST"), awsapigateway.NewLambdaIntegration(ingestFn, nil), nil)
	posts.AddMethod(jsii.String("GET"), awsapigateway.NewLambdaIntegration(lookupFn, nil), nil)

	// 3h. Stack Outputs
	awscdk.NewCfnOutput(stack, jsii.String("TableName"), &awscdk.CfnOutputProps{
		Value: table.TableName(),
	})
	awscdk.NewCfnOutput(stack, jsii.String("StreamName"), &awscdk.CfnOutputProps{
		Value: stream.StreamName(),
	})
	awscdk.NewCfnOutput(stack, jsii.String("TopicArn"), &awscdk.CfnOutputProps{
		Value: topic.TopicArn(),
	})
	awscdk.NewCfnOutput(stack, jsii.String("ApiUrl"), &awscdk.CfnOutputProps{
		Value: api.Url(),
	})

	return stack
}

func removalPolicy(destroy bool) awscdk.RemovalPolicy {
	if destroy {
		return awscdk.RemovalPolicy_DESTROY
	}
	return awscdk.RemovalPolicy_RETAIN
}

func logRetentionDays(days float64) awslogs.RetentionDays {
	switch days {
	case 1:
		return awslogs.RetentionDays_ONE_DAY
	case 3:
		return awslogs.RetentionDays_THREE_DAYS
	case 5:
		return awslogs.RetentionDays_FIVE_DAYS
	case 7:
		return awslogs.RetentionDays_ONE_WEEK
	case 14:
		return awslogs.RetentionDays_TWO_WEEKS
	case 30:
		return awslogs.RetentionDays_ONE_MONTH
	case 60:
		return awslogs.RetentionDays_TWO_MONTHS
	case 90:
		return awslogs.RetentionDays_THREE_MONTHS
	case 365:
		return awslogs.RetentionDays_ONE_YEAR
	default:
		return awslogs.RetentionDays_ONE_WEEK
	}
}
