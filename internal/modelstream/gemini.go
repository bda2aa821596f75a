package modelstream

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// GeminiStreamer is an alternate Streamer implementation invoking Google's
// Gemini API directly, grounded on the teacher's
// pkg/connector/provider_gemini.go GeminiProvider (same genai.Client +
// GenerateContentConfig shape), for tenants whose model_id names a Gemini
// model.
type GeminiStreamer struct {
	client *genai.Client
	log    zerolog.Logger
}

func NewGeminiStreamer(ctx context.Context, apiKey string, log zerolog.Logger) (*GeminiStreamer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiStreamer{client: client, log: log}, nil
}

func (s *GeminiStreamer) Name() string { return "gemini" }

func (s *GeminiStreamer) Stream(ctx context.Context, params Params) (<-chan Event, error) {
	out := make(chan Event)

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: params.Prompt}}},
	}
	config := &genai.GenerateContentConfig{}
	if params.Temperature > 0 {
		temp := float32(params.Temperature)
		config.Temperature = &temp
	}
	if params.MaxTokens > 0 {
		config.MaxOutputTokens = int32(params.MaxTokens)
	}

	go func() {
		defer close(out)
		for resp, err := range s.client.Models.GenerateContentStream(ctx, params.ModelID, contents, config) {
			if err != nil {
				out <- Event{Type: EventError, Err: fmt.Errorf("gemini stream: %w", err)}
				return
			}
			if resp == nil {
				continue
			}
			for _, candidate := range resp.Candidates {
				if candidate.Content == nil {
					continue
				}
				for _, part := range candidate.Content.Parts {
					if part.Text != "" {
						out <- Event{Type: EventDelta, Delta: part.Text}
					}
				}
			}
		}
		out <- Event{Type: EventStop}
	}()

	return out, nil
}
