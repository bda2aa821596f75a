package modelstream

import "testing"

func TestRouter_SelectsByModelPrefix(t *testing.T) {
	bedrock := &Fake{}
	anthropicDirect := &Fake{}
	openaiDirect := &Fake{}
	gemini := &Fake{}
	r := Router{Bedrock: bedrock, Anthropic: anthropicDirect, OpenAI: openaiDirect, Gemini: gemini}

	tests := []struct {
		model string
		want  Streamer
	}{
		{"anthropic.claude-3-5-sonnet-20241022-v2:0", bedrock},
		{"claude-3-5-sonnet-direct", anthropicDirect},
		{"gpt-4o", openaiDirect},
		{"o1-preview", openaiDirect},
		{"gemini-2.0-flash", gemini},
		{"unknown-model", bedrock},
	}
	for _, tt := range tests {
		if got := r.Select(tt.model); got != tt.want {
			t.Errorf("Select(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}

func TestRouter_FallsBackToBedrockWhenAlternateUnset(t *testing.T) {
	bedrock := &Fake{}
	r := Router{Bedrock: bedrock}
	if got := r.Select("gpt-4o"); got != bedrock {
		t.Errorf("Select() = %v, want bedrock fallback when OpenAI unset", got)
	}
	if got := r.Select("gemini-2.0-flash"); got != bedrock {
		t.Errorf("Select() = %v, want bedrock fallback when Gemini unset", got)
	}
}
