package showcase

import (
	"testing"

	"github.com/fernwell/assistant-gateway/internal/tenantconfig"
)

func testConfig() *tenantconfig.TenantConfig {
	return &tenantconfig.TenantConfig{
		ConversationBranches: map[string]tenantconfig.Branch{
			"lovebox_discussion": {ShowcaseItemID: "lovebox_card"},
			"no_showcase":        {},
		},
		ContentShowcase: []tenantconfig.ShowcaseItem{
			{ID: "lovebox_card", Name: "Love Box", Enabled: true, AvailableCTAs: tenantconfig.AvailableCTAs{Primary: "lb_apply_cta"}},
			{ID: "disabled_card", Name: "Disabled", Enabled: false},
		},
		CTADefinitions: map[string]tenantconfig.CTADefinition{
			"lb_apply_cta": {Label: "Apply", Action: "start_form"},
		},
	}
}

func TestForBranch_ResolvesItemAndOwnCTAs(t *testing.T) {
	res := ForBranch("lovebox_discussion", testConfig())
	if res == nil {
		t.Fatal("res = nil, want resolved showcase")
	}
	if res.Item.Name != "Love Box" {
		t.Errorf("Item.Name = %q, want Love Box", res.Item.Name)
	}
	if res.Primary == nil || res.Primary.ID != "lb_apply_cta" {
		t.Errorf("Primary = %+v, want lb_apply_cta", res.Primary)
	}
}

func TestForBranch_NoShowcaseItemID(t *testing.T) {
	if res := ForBranch("no_showcase", testConfig()); res != nil {
		t.Errorf("res = %+v, want nil", res)
	}
}

func TestForBranch_MissingItem(t *testing.T) {
	cfg := testConfig()
	cfg.ConversationBranches["broken"] = tenantconfig.Branch{ShowcaseItemID: "does_not_exist"}
	if res := ForBranch("broken", cfg); res != nil {
		t.Errorf("res = %+v, want nil for missing item", res)
	}
}

func TestForBranch_DisabledItem(t *testing.T) {
	cfg := testConfig()
	cfg.ConversationBranches["disabled_branch"] = tenantconfig.Branch{ShowcaseItemID: "disabled_card"}
	if res := ForBranch("disabled_branch", cfg); res != nil {
		t.Errorf("res = %+v, want nil for disabled item", res)
	}
}

func TestForBranch_FallsBackToBranchCTAsWhenItemHasNone(t *testing.T) {
	cfg := testConfig()
	cfg.ContentShowcase[0].AvailableCTAs = tenantconfig.AvailableCTAs{}
	cfg.ConversationBranches["lovebox_discussion"] = tenantconfig.Branch{
		ShowcaseItemID: "lovebox_card",
		AvailableCTAs:  tenantconfig.AvailableCTAs{Primary: "lb_apply_cta"},
	}
	res := ForBranch("lovebox_discussion", cfg)
	if res == nil || res.Primary == nil {
		t.Fatalf("res = %+v, want branch CTAs used as fallback", res)
	}
}
