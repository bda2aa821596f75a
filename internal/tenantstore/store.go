// Package tenantstore implements C1, the Tenant Config Store: a
// read-through cache over objectstore.Store, grounded on the teacher's
// OpenRouterCache (pkg/connector/model_cache.go) — same shape of RWMutex
// guarding a map, a fetch time/TTL pair per entry, and "fail open on fetch
// failure" semantics (Load returns nil; expired entries are not served),
// here adapted from a single global model list
// to a per-tenant-hash keyed snapshot cache.
package tenantstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fernwell/assistant-gateway/internal/objectstore"
	"github.com/fernwell/assistant-gateway/internal/tenantconfig"
)

type cacheEntry struct {
	config    *tenantconfig.TenantConfig
	fetchedAt time.Time
}

// Store is C1: resolves tenant_hash -> TenantConfig via a two-step object
// lookup, cached in-process with a TTL.
type Store struct {
	objects objectstore.Store
	ttl     time.Duration
	log     zerolog.Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

func New(objects objectstore.Store, ttl time.Duration, log zerolog.Logger) *Store {
	return &Store{
		objects: objects,
		ttl:     ttl,
		cache:   make(map[string]cacheEntry),
		log:     log,
	}
}

type tenantMapping struct {
	TenantID string `json:"tenant_id"`
}

// Load resolves tenant_hash to a TenantConfig snapshot. On any retrieval
// failure it returns nil — the function itself never returns an
// error, per spec.md §4.1 ("returns null and logs"); callers substitute a
// minimal default.
func (s *Store) Load(ctx context.Context, tenantHash string) *tenantconfig.TenantConfig {
	if snap, ok := s.snapshot(tenantHash); ok {
		return snap
	}

	cfg, err := s.fetch(ctx, tenantHash)
	if err != nil {
		s.log.Warn().Err(err).Str("tenant_hash", tenantHash).Msg("tenant config load failed, caller will use defaults")
		return nil
	}

	s.mu.Lock()
	s.cache[tenantHash] = cacheEntry{config: cfg, fetchedAt: time.Now()}
	s.mu.Unlock()
	return cfg
}

// snapshot returns a cached entry if present and not expired. Entries are
// never mutated in place; a refresh replaces the map entry atomically
// under the write lock (spec.md §4.1: "writers never mutate a live entry").
func (s *Store) snapshot(tenantHash string) (*tenantconfig.TenantConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.cache[tenantHash]
	if !ok {
		return nil, false
	}
	if time.Since(entry.fetchedAt) > s.ttl {
		return nil, false
	}
	return entry.config, true
}

func (s *Store) fetch(ctx context.Context, tenantHash string) (*tenantconfig.TenantConfig, error) {
	mappingKey := fmt.Sprintf("mappings/%s", tenantHash)
	body, found, err := s.objects.Get(ctx, mappingKey)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", mappingKey, err)
	}
	if !found {
		return nil, fmt.Errorf("no mapping for tenant hash %q", tenantHash)
	}
	var mapping tenantMapping
	if err := json.Unmarshal(body, &mapping); err != nil {
		return nil, fmt.Errorf("decoding mapping %s: %w", mappingKey, err)
	}
	if mapping.TenantID == "" {
		return nil, fmt.Errorf("mapping %s has empty tenant_id", mappingKey)
	}

	candidates := []string{
		fmt.Sprintf("tenants/%s/%s-config", mapping.TenantID, mapping.TenantID),
		fmt.Sprintf("tenants/%s/config", mapping.TenantID),
	}
	var lastErr error
	for _, key := range candidates {
		body, found, err := s.objects.Get(ctx, key)
		if err != nil {
			lastErr = err
			continue
		}
		if !found {
			continue
		}
		cfg, err := tenantconfig.Decode(body)
		if err != nil {
			lastErr = fmt.Errorf("decoding %s: %w", key, err)
			continue
		}
		if cfg.TenantID == "" {
			cfg.TenantID = mapping.TenantID
		}
		if cfg.TenantHash == "" {
			cfg.TenantHash = tenantHash
		}
		return cfg, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("no config object found for tenant %q", mapping.TenantID)
}

// Default returns the minimal configuration callers substitute when Load
// returns nil (spec.md §4.1).
func Default(modelID string) *tenantconfig.TenantConfig {
	return &tenantconfig.TenantConfig{
		RoleInstructions:     "You are a virtual assistant answering questions of website visitors to a nonprofit's site.",
		ModelID:              modelID,
		ConversationBranches: map[string]tenantconfig.Branch{},
		CTADefinitions:       map[string]tenantconfig.CTADefinition{},
		ConversationalForms:  map[string]tenantconfig.ConversationalForm{},
	}
}
