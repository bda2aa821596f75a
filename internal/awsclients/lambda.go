package awsclients

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// LambdaInvoker implements fulfillment.NestedInvoker via an async
// (InvocationType=Event) Lambda invoke, matching the "fire-and-forget"
// contract of spec.md §4.10.
type LambdaInvoker struct {
	client *lambda.Client
}

func NewLambdaInvoker(client *lambda.Client) *LambdaInvoker {
	return &LambdaInvoker{client: client}
}

func (l *LambdaInvoker) InvokeAsync(ctx context.Context, functionName string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal lambda payload: %w", err)
	}
	_, err = l.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: types.InvocationTypeEvent,
		Payload:        body,
	})
	return err
}
