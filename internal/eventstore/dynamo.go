package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Store records which webhook event ids have already been dispatched.
// Stripe delivers at least once, so without a store retried deliveries
// send duplicate receipts.
type Store interface {
	// MarkProcessed returns true if this is the first time the event id
	// has been seen.
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
}

type DynamoStore struct {
	client *dynamodb.Client
	table  string
}

func NewDynamo(client *dynamodb.Client, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

func (s *DynamoStore) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"PK":        &types.AttributeValueMemberS{Value: "EVENT#" + eventID},
			"SK":        &types.AttributeValueMemberS{Value: "EVENT#" + eventID},
			"eventId":   &types.AttributeValueMemberS{Value: eventID},
			"createdAt": &types.AttributeValueMemberS{Value: now},
		},
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
