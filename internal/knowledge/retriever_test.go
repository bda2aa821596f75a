package knowledge

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeBase struct {
	passages []Passage
	err      error
	calls    int
}

func (f *fakeBase) Query(ctx context.Context, kbID, query string, topK int) ([]Passage, error) {
	f.calls++
	return f.passages, f.err
}

func TestRetrieve_EmptyKnowledgeBaseID(t *testing.T) {
	r := New(&fakeBase{}, time.Minute, zerolog.Nop())
	if got := r.Retrieve(context.Background(), "q", ""); got != "" {
		t.Errorf("Retrieve() = %q, want empty", got)
	}
}

func TestRetrieve_JoinsPassagesWithSeparatorAndHeaders(t *testing.T) {
	base := &fakeBase{passages: []Passage{{Text: "first"}, {Text: "second"}}}
	r := New(base, time.Minute, zerolog.Nop())
	got := r.Retrieve(context.Background(), "what is X", "kb1")
	if !strings.Contains(got, "**Context 1:**\nfirst") || !strings.Contains(got, "**Context 2:**\nsecond") {
		t.Errorf("Retrieve() = %q, missing expected context headers", got)
	}
	if !strings.Contains(got, separator) {
		t.Errorf("Retrieve() = %q, missing separator", got)
	}
}

func TestRetrieve_CachesByKBAndQuery(t *testing.T) {
	base := &fakeBase{passages: []Passage{{Text: "x"}}}
	r := New(base, time.Minute, zerolog.Nop())
	r.Retrieve(context.Background(), "same query", "kb1")
	r.Retrieve(context.Background(), "same query", "kb1")
	if base.calls != 1 {
		t.Errorf("base.calls = %d, want 1 (second call should hit cache)", base.calls)
	}
}

func TestRetrieve_FailureReturnsEmptyNotError(t *testing.T) {
	base := &fakeBase{err: errors.New("upstream down")}
	r := New(base, time.Minute, zerolog.Nop())
	if got := r.Retrieve(context.Background(), "q", "kb1"); got != "" {
		t.Errorf("Retrieve() = %q, want empty on failure", got)
	}
}

func TestRetrieve_ZeroResultsReturnsEmpty(t *testing.T) {
	base := &fakeBase{passages: nil}
	r := New(base, time.Minute, zerolog.Nop())
	if got := r.Retrieve(context.Background(), "q", "kb1"); got != "" {
		t.Errorf("Retrieve() = %q, want empty for zero results", got)
	}
}
