// Package knowledge implements C2, the Knowledge Retriever: fetches top-k
// passages from a tenant's knowledge base and caches results in-process,
// grounded on the same TTL-cache shape as internal/tenantstore (itself
// grounded on the teacher's pkg/connector/model_cache.go).
package knowledge

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fernwell/assistant-gateway/internal/gwerr"
)

const (
	topK      = 5
	separator = "\n\n---\n\n"
)

// Passage is one retrieved knowledge-base passage.
type Passage struct {
	Text string
}

// Base is the opaque vector knowledge base collaborator (spec.md §1:
// "consumed via opaque client interfaces").
type Base interface {
	Query(ctx context.Context, knowledgeBaseID, query string, topK int) ([]Passage, error)
}

type cacheEntry struct {
	context   string
	fetchedAt time.Time
}

// Retriever is C2.
type Retriever struct {
	base Base
	ttl  time.Duration
	log  zerolog.Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

func New(base Base, ttl time.Duration, log zerolog.Logger) *Retriever {
	return &Retriever{base: base, ttl: ttl, cache: make(map[string]cacheEntry), log: log}
}

func cacheKey(knowledgeBaseID, query string) string {
	sum := md5.Sum([]byte(query))
	return knowledgeBaseID + ":" + hex.EncodeToString(sum[:])
}

// Retrieve returns up to 5 top passages joined by the stable separator, or
// "" when no KB is configured or zero results come back. Failures return
// "" rather than propagating (spec.md §4.2).
func (r *Retriever) Retrieve(ctx context.Context, query, knowledgeBaseID string) string {
	if strings.TrimSpace(knowledgeBaseID) == "" {
		return ""
	}
	key := cacheKey(knowledgeBaseID, query)

	r.mu.RLock()
	entry, ok := r.cache[key]
	r.mu.RUnlock()
	if ok && time.Since(entry.fetchedAt) <= r.ttl {
		return entry.context
	}

	if r.base == nil {
		return ""
	}
	passages, err := r.base.Query(ctx, knowledgeBaseID, query, topK)
	if err != nil {
		classified := gwerr.New(gwerr.KindRetrieval, "knowledge retrieval failed, prompt will use fallback message", err)
		r.log.Warn().Err(classified).Str("knowledge_base_id", knowledgeBaseID).Msg(classified.Message)
		return ""
	}
	if len(passages) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(passages))
	for i, p := range passages {
		blocks = append(blocks, fmt.Sprintf("**Context %d:**\n%s", i+1, p.Text))
	}
	joined := strings.Join(blocks, separator)

	r.mu.Lock()
	r.cache[key] = cacheEntry{context: joined, fetchedAt: time.Now()}
	r.mu.Unlock()
	return joined
}

// Sweep evicts expired entries; called by internal/janitor.
func (r *Retriever) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	now := time.Now()
	for k, entry := range r.cache {
		if now.Sub(entry.fetchedAt) > r.ttl {
			delete(r.cache, k)
			removed++
		}
	}
	return removed
}
