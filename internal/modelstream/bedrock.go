package modelstream

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/rs/zerolog"
)

// BedrockStreamer is the primary Streamer, invoking Bedrock's Converse
// streaming API. This is the production path behind BEDROCK_MODEL_ID
// (spec.md §6.4).
type BedrockStreamer struct {
	client *bedrockruntime.Client
	log    zerolog.Logger
}

func NewBedrockStreamer(client *bedrockruntime.Client, log zerolog.Logger) *BedrockStreamer {
	return &BedrockStreamer{client: client, log: log}
}

func (s *BedrockStreamer) Name() string { return "bedrock" }

func (s *BedrockStreamer) Stream(ctx context.Context, params Params) (<-chan Event, error) {
	out := make(chan Event)

	input := &bedrockruntime.ConverseStreamInput{
		ModelId: aws.String(params.ModelID),
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: params.Prompt},
				},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(int32(params.MaxTokens)),
			Temperature: aws.Float32(float32(params.Temperature)),
		},
	}

	resp, err := s.client.ConverseStream(ctx, input)
	if err != nil {
		close(out)
		return out, fmt.Errorf("bedrock converse stream: %w", err)
	}

	go func() {
		defer close(out)
		stream := resp.GetStream()
		defer stream.Close()
		for event := range stream.Events() {
			switch v := event.(type) {
			case *types.ConverseStreamOutputMemberContentBlockDelta:
				if delta, ok := v.Value.Delta.(*types.ContentBlockDeltaMemberText); ok {
					out <- Event{Type: EventDelta, Delta: delta.Value}
				}
			case *types.ConverseStreamOutputMemberMessageStop:
				out <- Event{Type: EventStop}
				return
			}
		}
		if err := stream.Err(); err != nil {
			out <- Event{Type: EventError, Err: fmt.Errorf("bedrock stream: %w", err)}
			return
		}
		out <- Event{Type: EventStop}
	}()

	return out, nil
}
