package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/feedworks/sentiserver/internal/store"
	"github.com/feedworks/sentiserver/pkg/types"
)

// sentimentUpdateExpr rewrites exactly the four fields the worker owns.
// "status" is a DynamoDB reserved word, hence the #status alias.
const sentimentUpdateExpr = "SET sentiment = :s, #status = :t, updated_at = :u, sentiment_score = :ss"

// Create persists a new post, refusing to overwrite an existing id.
func (p *PostStore) Create(ctx context.Context, post types.Post) error {
	item, err := attributevalue.MarshalMap(post)
	if err != nil {
		return fmt.Errorf("marshaling post: %w", err)
	}

	_, err = p.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &p.tableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("post %s: %w", post.ID, store.ErrPostExists)
		}
		return fmt.Errorf("putting post %s: %w", post.ID, err)
	}
	return nil
}

// Get retrieves a post by id. Returns (nil, nil) when the id is unknown.
func (p *PostStore) Get(ctx context.Context, id string) (*types.Post, error) {
	out, err := p.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &p.tableName,
		Key: map[string]ddbtypes.AttributeValue{
			"id": &ddbtypes.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting post %s: %w", id, err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var post types.Post
	if err := attributevalue.UnmarshalMap(out.Item, &post); err != nil {
		return nil, fmt.Errorf("unmarshaling post %s: %w", id, err)
	}
	return &post, nil
}

// ApplyResult overwrites the sentiment fields, status and updated_at for a
// post in a single UpdateItem. The write is unconditional so redelivered
// stream records land on the same final state.
func (p *PostStore) ApplyResult(ctx context.Context, id string, res types.Result, updatedAt time.Time) error {
	if !res.Sentiment.Valid() {
		return fmt.Errorf("invalid sentiment %q for post %s", res.Sentiment, id)
	}
	encoded, err := res.Score.Encode()
	if err != nil {
		return err
	}
	updatedAtAV, err := attributevalue.Marshal(updatedAt)
	if err != nil {
		return fmt.Errorf("marshaling updated_at: %w", err)
	}

	_, err = p.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        &p.tableName,
		Key:              map[string]ddbtypes.AttributeValue{"id": &ddbtypes.AttributeValueMemberS{Value: id}},
		UpdateExpression: aws.String(sentimentUpdateExpr),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":s":  &ddbtypes.AttributeValueMemberS{Value: string(res.Sentiment)},
			":t":  &ddbtypes.AttributeValueMemberS{Value: string(types.StatusProcessed)},
			":u":  updatedAtAV,
			":ss": &ddbtypes.AttributeValueMemberS{Value: encoded},
		},
	})
	if err != nil {
		return fmt.Errorf("updating post %s: %w", id, err)
	}
	return nil
}
