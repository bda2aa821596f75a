package enhance

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/fernwell/assistant-gateway/internal/gwrequest"
	"github.com/fernwell/assistant-gateway/internal/routing"
	"github.com/fernwell/assistant-gateway/internal/tenantconfig"
)

func newEnhancer() *Enhancer {
	return New(routing.New(zerolog.Nop()), zerolog.Nop())
}

func TestEnhance_ExplicitRoutingWins(t *testing.T) {
	cfg := &tenantconfig.TenantConfig{
		ConversationBranches: map[string]tenantconfig.Branch{
			"volunteer_interest": {AvailableCTAs: tenantconfig.AvailableCTAs{Primary: "apply"}},
		},
		CTADefinitions: map[string]tenantconfig.CTADefinition{
			"apply": {Label: "Apply", Action: "navigate"},
		},
	}
	meta := gwrequest.RoutingMetadata{ActionChipTriggered: true, TargetBranch: "volunteer_interest"}
	res := newEnhancer().Enhance("reply", "hi", "t1", gwrequest.SessionContext{}, meta, cfg)

	if !res.Metadata.Enhanced || res.Metadata.RoutingTier != "explicit" || res.Metadata.RoutingMethod != "action_chip" {
		t.Errorf("Metadata = %+v, want explicit/action_chip", res.Metadata)
	}
	if len(res.CTAButtons) != 1 {
		t.Errorf("CTAButtons = %+v, want 1", res.CTAButtons)
	}
}

func TestEnhance_FreeFormNoFallbackReturnsEmpty(t *testing.T) {
	cfg := &tenantconfig.TenantConfig{}
	res := newEnhancer().Enhance("reply", "random text", "t1", gwrequest.SessionContext{}, gwrequest.RoutingMetadata{}, cfg)
	if res.Metadata.Enhanced || len(res.CTAButtons) != 0 {
		t.Errorf("want unenhanced empty result, got %+v", res)
	}
}

func TestEnhance_ProgramSwitchDetected(t *testing.T) {
	cfg := &tenantconfig.TenantConfig{
		ConversationalForms: map[string]tenantconfig.ConversationalForm{
			"volunteer_apply": {Title: "Volunteer Application", Enabled: true, TriggerPhrases: []string{"volunteer"}},
			"dd_apply":        {Title: "Dare to Dream Application", Enabled: true, TriggerPhrases: []string{"dare to dream"}, CTAText: "Apply to Dare to Dream"},
		},
	}
	sess := gwrequest.SessionContext{SuspendedForms: []string{"volunteer_apply"}, ProgramInterest: "lovebox"}
	res := newEnhancer().Enhance("reply", "Tell me about Dare to Dream", "t1", sess, gwrequest.RoutingMetadata{}, cfg)

	if !res.Metadata.ProgramSwitchDetected {
		t.Fatalf("ProgramSwitchDetected = false, want true; metadata=%+v", res.Metadata)
	}
	if res.Metadata.SuspendedForm == nil || res.Metadata.SuspendedForm.ProgramName != "Love Box" {
		t.Errorf("SuspendedForm = %+v, want program_name Love Box", res.Metadata.SuspendedForm)
	}
	if res.Metadata.NewFormOfInterest == nil || res.Metadata.NewFormOfInterest.FormID != "dd_apply" || res.Metadata.NewFormOfInterest.ProgramName != "Dare to Dream" {
		t.Errorf("NewFormOfInterest = %+v, want dd_apply / Dare to Dream", res.Metadata.NewFormOfInterest)
	}
	if len(res.CTAButtons) != 0 {
		t.Errorf("CTAButtons = %+v, want empty on program switch", res.CTAButtons)
	}
}

func TestEnhance_SameSuspendedFormDetected(t *testing.T) {
	cfg := &tenantconfig.TenantConfig{
		ConversationalForms: map[string]tenantconfig.ConversationalForm{
			"volunteer_apply": {Title: "Volunteer Application", Enabled: true, TriggerPhrases: []string{"volunteer"}},
		},
	}
	sess := gwrequest.SessionContext{SuspendedForms: []string{"volunteer_apply"}}
	res := newEnhancer().Enhance("reply", "I want to volunteer", "t1", sess, gwrequest.RoutingMetadata{}, cfg)
	if !res.Metadata.SuspendedFormsDetected || res.Metadata.ProgramSwitchDetected {
		t.Errorf("Metadata = %+v, want SuspendedFormsDetected only", res.Metadata)
	}
}

func TestEnhance_LegacyFormTrigger(t *testing.T) {
	cfg := &tenantconfig.TenantConfig{
		ConversationalForms: map[string]tenantconfig.ConversationalForm{
			"lb_apply": {Title: "Love Box Application", Enabled: true, TriggerPhrases: []string{"love box application"}, CTAText: "Apply Now"},
		},
	}
	res := newEnhancer().Enhance("reply", "I'd like to start the love box application", "t1", gwrequest.SessionContext{}, gwrequest.RoutingMetadata{}, cfg)
	if !res.Metadata.Enhanced || len(res.CTAButtons) != 1 || res.CTAButtons[0].Type != "form_cta" {
		t.Errorf("want single form_cta, got %+v / %+v", res.Metadata, res.CTAButtons)
	}
}

func TestEnhance_LegacyKeywordFallback(t *testing.T) {
	cfg := &tenantconfig.TenantConfig{
		ConversationBranches: map[string]tenantconfig.Branch{
			"volunteer_interest": {
				DetectionKeywords: []string{"volunteer"},
				AvailableCTAs:     tenantconfig.AvailableCTAs{Primary: "apply"},
			},
		},
		CTADefinitions: map[string]tenantconfig.CTADefinition{
			"apply": {Label: "Apply", Action: "navigate"},
		},
	}
	res := newEnhancer().Enhance("You could volunteer with us this weekend", "tell me how to help", "t1", gwrequest.SessionContext{}, gwrequest.RoutingMetadata{}, cfg)
	if !res.Metadata.Enhanced || len(res.CTAButtons) != 1 {
		t.Errorf("want keyword-matched CTA, got %+v / %+v", res.Metadata, res.CTAButtons)
	}
}

func TestEnhance_NilConfigDegradesGracefully(t *testing.T) {
	res := newEnhancer().Enhance("reply", "hi", "t1", gwrequest.SessionContext{}, gwrequest.RoutingMetadata{}, nil)
	if res.Metadata.Enhanced || res.Metadata.Error == "" || res.Message != "reply" {
		t.Errorf("want degraded result with error and intact message, got %+v", res)
	}
}
