package modelstream

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
)

// OpenAIStreamer is an alternate Streamer implementation, grounded on the
// teacher's pkg/aiprovider OpenAI-compatible design, for tenants configured
// to route through an OpenAI-hosted model instead of Bedrock/Anthropic.
type OpenAIStreamer struct {
	client openai.Client
	log    zerolog.Logger
}

func NewOpenAIStreamer(apiKey string, log zerolog.Logger) *OpenAIStreamer {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIStreamer{client: client, log: log}
}

func (s *OpenAIStreamer) Name() string { return "openai" }

func (s *OpenAIStreamer) Stream(ctx context.Context, params Params) (<-chan Event, error) {
	out := make(chan Event)

	stream := s.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model: params.ModelID,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(params.Prompt),
		},
		MaxCompletionTokens: openai.Int(int64(params.MaxTokens)),
		Temperature:         openai.Float(params.Temperature),
	})

	go func() {
		defer close(out)
		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			if delta := chunk.Choices[0].Delta.Content; delta != "" {
				out <- Event{Type: EventDelta, Delta: delta}
			}
			if chunk.Choices[0].FinishReason != "" {
				out <- Event{Type: EventStop}
				return
			}
		}
		if err := stream.Err(); err != nil {
			out <- Event{Type: EventError, Err: fmt.Errorf("openai stream: %w", err)}
			return
		}
		out <- Event{Type: EventStop}
	}()

	return out, nil
}
