package modelstream

import "strings"

// Router selects among the configured Streamer backends by model ID
// prefix. Bedrock is the default backend (spec.md §6.4: BEDROCK_MODEL_ID);
// OpenAI, direct-Anthropic, and Gemini are opt-in alternates a tenant's
// model_id can select, per SPEC_FULL.md §11's wiring of the rest of the
// pack's SDKs.
type Router struct {
	Bedrock   Streamer
	Anthropic Streamer
	OpenAI    Streamer
	Gemini    Streamer
}

// Select returns the Streamer that should serve the given model ID.
func (r Router) Select(modelID string) Streamer {
	lower := strings.ToLower(modelID)
	switch {
	case strings.HasPrefix(lower, "gpt-") || strings.HasPrefix(lower, "o1") || strings.HasPrefix(lower, "o3"):
		if r.OpenAI != nil {
			return r.OpenAI
		}
	case strings.HasPrefix(lower, "claude-") && r.Anthropic != nil:
		return r.Anthropic
	case strings.HasPrefix(lower, "gemini-") && r.Gemini != nil:
		return r.Gemini
	}
	return r.Bedrock
}
