package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
)

// DynamoStore is the production SubmissionStore and CounterStore backend.
type DynamoStore struct {
	client          *dynamodb.Client
	submissionTable string
	usageTable      string
	log             zerolog.Logger
}

func NewDynamoStore(client *dynamodb.Client, submissionTable, usageTable string, log zerolog.Logger) *DynamoStore {
	return &DynamoStore{client: client, submissionTable: submissionTable, usageTable: usageTable, log: log}
}

func (d *DynamoStore) PutSubmission(ctx context.Context, submissionID string, item map[string]any) error {
	full := make(map[string]any, len(item)+1)
	for k, v := range item {
		full[k] = v
	}
	full["submission_id"] = submissionID

	av, err := attributevalue.MarshalMap(full)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.submissionTable),
		Item:      av,
	})
	return err
}

func (d *DynamoStore) GetCount(ctx context.Context, tenantID, month string) (int, bool, error) {
	key, err := attributevalue.MarshalMap(map[string]any{"tenant_id": tenantID, "month": month})
	if err != nil {
		return 0, false, err
	}
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.usageTable),
		Key:       key,
	})
	if err != nil {
		return 0, false, err
	}
	if out.Item == nil {
		return 0, false, nil
	}
	countAttr, ok := out.Item["count"]
	if !ok {
		return 0, false, nil
	}
	n, ok := countAttr.(*ddbtypes.AttributeValueMemberN)
	if !ok {
		return 0, false, nil
	}
	var count int
	if _, err := fmt.Sscanf(n.Value, "%d", &count); err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// Increment applies the atomic "set count = if_not_exists(count, 0) + 1,
// updated_at = now" update expression (spec.md §4.11) and returns the new
// value.
func (d *DynamoStore) Increment(ctx context.Context, tenantID, month string) (int, error) {
	key, err := attributevalue.MarshalMap(map[string]any{"tenant_id": tenantID, "month": month})
	if err != nil {
		return 0, err
	}
	out, err := d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(d.usageTable),
		Key:              key,
		UpdateExpression: aws.String("SET #c = if_not_exists(#c, :zero) + :one, updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#c": "count",
		},
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":zero": &ddbtypes.AttributeValueMemberN{Value: "0"},
			":one":  &ddbtypes.AttributeValueMemberN{Value: "1"},
			":now":  &ddbtypes.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
		ReturnValues: ddbtypes.ReturnValueAllNew,
	})
	if err != nil {
		return 0, err
	}
	n, ok := out.Attributes["count"].(*ddbtypes.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("increment: no count attribute returned")
	}
	var count int
	if _, err := fmt.Sscanf(n.Value, "%d", &count); err != nil {
		return 0, err
	}
	return count, nil
}
