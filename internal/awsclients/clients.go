// Package awsclients constructs the shared AWS SDK v2 clients the
// gateway's external-dependency interfaces wrap (SPEC_FULL.md §11):
// bedrockruntime, s3, dynamodb, sesv2, sns, lambda. Construction is
// centralized here so cmd/gateway/main.go wires one aws.Config for every
// service client, mirroring the teacher's single aws.Config per process.
package awsclients

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Clients bundles every AWS service client the gateway's components need.
type Clients struct {
	Bedrock      *bedrockruntime.Client
	BedrockAgent *bedrockagentruntime.Client
	S3           *s3.Client
	DynamoDB     *dynamodb.Client
	SESv2        *sesv2.Client
	SNS          *sns.Client
	Lambda       *lambda.Client
}

// Load reads the default AWS config chain (environment, shared config,
// instance role) and constructs every service client from it.
func Load(ctx context.Context) (*Clients, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return FromConfig(cfg), nil
}

// FromConfig builds every client from an already-resolved aws.Config,
// used directly by tests that construct a config pointed at a local
// endpoint.
func FromConfig(cfg aws.Config) *Clients {
	return &Clients{
		Bedrock:      bedrockruntime.NewFromConfig(cfg),
		BedrockAgent: bedrockagentruntime.NewFromConfig(cfg),
		S3:           s3.NewFromConfig(cfg),
		DynamoDB:     dynamodb.NewFromConfig(cfg),
		SESv2:        sesv2.NewFromConfig(cfg),
		SNS:          sns.NewFromConfig(cfg),
		Lambda:       lambda.NewFromConfig(cfg),
	}
}
