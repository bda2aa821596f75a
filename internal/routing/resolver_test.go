package routing

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/fernwell/assistant-gateway/internal/gwrequest"
	"github.com/fernwell/assistant-gateway/internal/tenantconfig"
)

func testConfig() *tenantconfig.TenantConfig {
	return &tenantconfig.TenantConfig{
		ConversationBranches: map[string]tenantconfig.Branch{
			"volunteer_interest": {},
			"navigation_hub":     {},
		},
		CTASettings: tenantconfig.CTASettings{FallbackBranch: "navigation_hub"},
	}
}

func TestResolve_ActionChipValidBranch(t *testing.T) {
	r := New(zerolog.Nop())
	branch, method := r.Resolve(gwrequest.RoutingMetadata{
		ActionChipTriggered: true,
		TargetBranch:        "volunteer_interest",
	}, testConfig())
	if branch != "volunteer_interest" || method != MethodActionChip {
		t.Errorf("got (%q, %q), want (volunteer_interest, action_chip)", branch, method)
	}
}

func TestResolve_ActionChipInvalidFallsBackToFallback(t *testing.T) {
	r := New(zerolog.Nop())
	branch, method := r.Resolve(gwrequest.RoutingMetadata{
		ActionChipTriggered: true,
		TargetBranch:        "nonexistent",
	}, testConfig())
	if branch != "navigation_hub" || method != MethodFallback {
		t.Errorf("got (%q, %q), want (navigation_hub, fallback)", branch, method)
	}
}

func TestResolve_ActionChipNullTargetFallsThroughSilently(t *testing.T) {
	r := New(zerolog.Nop())
	branch, method := r.Resolve(gwrequest.RoutingMetadata{ActionChipTriggered: true}, testConfig())
	if branch != "navigation_hub" || method != MethodFallback {
		t.Errorf("got (%q, %q), want (navigation_hub, fallback)", branch, method)
	}
}

func TestResolve_CTAClickValidBranch(t *testing.T) {
	r := New(zerolog.Nop())
	branch, method := r.Resolve(gwrequest.RoutingMetadata{
		CTATriggered: true,
		TargetBranch: "volunteer_interest",
	}, testConfig())
	if branch != "volunteer_interest" || method != MethodCTAClick {
		t.Errorf("got (%q, %q), want (volunteer_interest, cta)", branch, method)
	}
}

func TestResolve_NoRoutingNoFallback(t *testing.T) {
	r := New(zerolog.Nop())
	cfg := testConfig()
	cfg.CTASettings.FallbackBranch = ""
	branch, method := r.Resolve(gwrequest.RoutingMetadata{}, cfg)
	if branch != "" || method != MethodNone {
		t.Errorf("got (%q, %q), want (\"\", none)", branch, method)
	}
}

func TestResolve_FallbackInvalidReturnsNone(t *testing.T) {
	r := New(zerolog.Nop())
	cfg := testConfig()
	cfg.CTASettings.FallbackBranch = "nonexistent"
	branch, method := r.Resolve(gwrequest.RoutingMetadata{}, cfg)
	if branch != "" || method != MethodNone {
		t.Errorf("got (%q, %q), want (\"\", none)", branch, method)
	}
}

func TestResolve_NilConfig(t *testing.T) {
	r := New(zerolog.Nop())
	branch, method := r.Resolve(gwrequest.RoutingMetadata{ActionChipTriggered: true, TargetBranch: "x"}, nil)
	if branch != "" || method != MethodNone {
		t.Errorf("got (%q, %q), want (\"\", none)", branch, method)
	}
}
