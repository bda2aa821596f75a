package modelstream

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
)

// AnthropicStreamer is an alternate Streamer implementation invoking the
// Anthropic Messages API directly (rather than via Bedrock), for tenants
// whose model_id names a direct Anthropic model.
type AnthropicStreamer struct {
	client anthropic.Client
	log    zerolog.Logger
}

func NewAnthropicStreamer(apiKey string, log zerolog.Logger) *AnthropicStreamer {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicStreamer{client: client, log: log}
}

func (s *AnthropicStreamer) Name() string { return "anthropic" }

func (s *AnthropicStreamer) Stream(ctx context.Context, params Params) (<-chan Event, error) {
	out := make(chan Event)

	stream := s.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(params.ModelID),
		MaxTokens:   int64(params.MaxTokens),
		Temperature: anthropic.Float(params.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(params.Prompt)),
		},
	})

	go func() {
		defer close(out)
		var message anthropic.Message
		for stream.Next() {
			event := stream.Current()
			if err := message.Accumulate(event); err != nil {
				out <- Event{Type: EventError, Err: fmt.Errorf("anthropic accumulate: %w", err)}
				return
			}
			switch delta := event.AsAny().(type) {
			case anthropic.ContentBlockDeltaEvent:
				if text := delta.Delta.Text; text != "" {
					out <- Event{Type: EventDelta, Delta: text}
				}
			}
		}
		if err := stream.Err(); err != nil {
			out <- Event{Type: EventError, Err: fmt.Errorf("anthropic stream: %w", err)}
			return
		}
		out <- Event{Type: EventStop}
	}()

	return out, nil
}
