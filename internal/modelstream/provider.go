// Package modelstream implements C4, the Model Streamer: invokes the
// hosted LLM's streaming interface and translates its delta events into a
// uniform iterator of text deltas, grounded on the teacher's
// pkg/aiprovider.AIProvider interface shape (same StreamEvent /
// GenerateParams separation), generalized here from an OpenAI-compatible
// provider set to any hosted LLM (Bedrock, Anthropic direct, OpenAI).
package modelstream

import "context"

// EventType identifies the kind of streaming event (spec.md §4.4).
type EventType string

const (
	EventDelta EventType = "delta"
	EventStop  EventType = "stop"
	EventError EventType = "error"
)

// Event is one item from a model stream.
type Event struct {
	Type  EventType
	Delta string
	Err   error
}

// Params bundles a generation request (spec.md §4.4).
type Params struct {
	Prompt      string
	ModelID     string
	MaxTokens   int
	Temperature float64
}

// Streamer is the hosted-LLM collaborator (spec.md §1: "consumed via
// opaque client interfaces"). Implementations must not buffer beyond a
// single delta and must close the returned channel after emitting exactly
// one terminal event (EventStop or EventError).
type Streamer interface {
	Name() string
	Stream(ctx context.Context, params Params) (<-chan Event, error)
}
