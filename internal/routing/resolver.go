// Package routing implements the 3-tier branch resolution hierarchy
// (spec.md §4.5): action chip, CTA click, fallback navigation hub.
package routing

import (
	"github.com/rs/zerolog"

	"github.com/fernwell/assistant-gateway/internal/gwrequest"
	"github.com/fernwell/assistant-gateway/internal/tenantconfig"
)

// Method names the tier that produced the resolved branch, surfaced in
// response metadata as routing_method (spec.md §4.6 test vectors).
type Method string

const (
	MethodActionChip Method = "action_chip"
	MethodCTAClick   Method = "cta"
	MethodFallback   Method = "fallback"
	MethodNone       Method = ""
)

// Resolver implements resolve_branch.
type Resolver struct {
	Log zerolog.Logger
}

func New(log zerolog.Logger) *Resolver {
	return &Resolver{Log: log.With().Str("component", "routing").Logger()}
}

// Resolve walks the 3-tier hierarchy and returns the first branch name that
// validates, along with the method that produced it. An empty branch name
// means no routing: the caller falls back to keyword-based enhancement.
func (r *Resolver) Resolve(meta gwrequest.RoutingMetadata, cfg *tenantconfig.TenantConfig) (string, Method) {
	if cfg == nil {
		return "", MethodNone
	}

	if meta.ActionChipTriggered {
		if meta.TargetBranch == "" {
			// Null target: fall through silently.
		} else if r.valid(meta.TargetBranch, cfg) {
			return meta.TargetBranch, MethodActionChip
		} else {
			r.Log.Warn().Str("target_branch", meta.TargetBranch).Msg("action chip named unknown branch, falling through")
		}
	}

	if meta.CTATriggered {
		if meta.TargetBranch == "" {
			// Null target: fall through silently.
		} else if r.valid(meta.TargetBranch, cfg) {
			return meta.TargetBranch, MethodCTAClick
		} else {
			r.Log.Warn().Str("target_branch", meta.TargetBranch).Msg("cta click named unknown branch, falling through")
		}
	}

	fb := cfg.CTASettings.FallbackBranch
	if fb != "" && r.valid(fb, cfg) {
		return fb, MethodFallback
	}
	return "", MethodNone
}

func (r *Resolver) valid(branch string, cfg *tenantconfig.TenantConfig) bool {
	if cfg.ConversationBranches == nil {
		return false
	}
	_, ok := cfg.ConversationBranches[branch]
	return ok
}
