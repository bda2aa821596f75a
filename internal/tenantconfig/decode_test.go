package tenantconfig

import (
	"encoding/json"
	"testing"
)

func TestDecode_TolerantOfTrailingCommas(t *testing.T) {
	doc := []byte(`{
		"tenant_id": "acme",
		"role_instructions": "Be helpful.",
		"cta_settings": {"max_display": 2,},
	}`)
	cfg, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode returned error for json5-tolerant input: %v", err)
	}
	if cfg.TenantID != "acme" {
		t.Errorf("TenantID = %q, want acme", cfg.TenantID)
	}
	if cfg.CTASettings.MaxDisplay != 2 {
		t.Errorf("MaxDisplay = %d, want 2", cfg.CTASettings.MaxDisplay)
	}
}

func TestDecode_StrictJSONFallback(t *testing.T) {
	doc := []byte(`{"tenant_id": "beta", "role_instructions": "Hi"}`)
	cfg, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode returned error for strict JSON input: %v", err)
	}
	if cfg.TenantID != "beta" {
		t.Errorf("TenantID = %q, want beta", cfg.TenantID)
	}
}

func TestDecode_GarbageReturnsError(t *testing.T) {
	if _, err := Decode([]byte(`not json at all {{{`)); err == nil {
		t.Error("want error for unparseable input")
	}
}

func TestActionChips_UnmarshalsMapSchema(t *testing.T) {
	doc := []byte(`{"b_chip": {"label": "B", "value": "b"}, "a_chip": {"label": "A", "value": "a"}}`)
	var chips ActionChips
	if err := json.Unmarshal(doc, &chips); err != nil {
		t.Fatal(err)
	}
	if len(chips.Chips) != 2 {
		t.Fatalf("len(Chips) = %d, want 2", len(chips.Chips))
	}
	if chips.Chips[0].ID != "a_chip" || chips.Chips[1].ID != "b_chip" {
		t.Errorf("chips not sorted by ID: %+v", chips.Chips)
	}
}

func TestActionChips_UnmarshalsLegacyListSchema(t *testing.T) {
	doc := []byte(`[{"id": "chip1", "label": "One"}, {"id": "chip2", "label": "Two"}]`)
	var chips ActionChips
	if err := json.Unmarshal(doc, &chips); err != nil {
		t.Fatal(err)
	}
	if len(chips.Chips) != 2 || chips.Chips[0].ID != "chip1" {
		t.Errorf("unexpected chips: %+v", chips.Chips)
	}
}

func TestActionChips_MarshalEmitsMapSchema(t *testing.T) {
	chips := ActionChips{Chips: []ActionChip{{ID: "x", Label: "X"}}}
	body, err := json.Marshal(chips)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]ActionChip
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("MarshalJSON did not emit map schema: %v", err)
	}
	if _, ok := m["x"]; !ok {
		t.Errorf("expected key %q in marshaled map, got %s", "x", body)
	}
}

func TestTenantConfig_EffectiveModelID_PrefersAWSBinding(t *testing.T) {
	cfg := &TenantConfig{ModelID: "fallback-model", AWS: AWSBinding{ModelID: "aws-model"}}
	if got := cfg.EffectiveModelID("default-model"); got != "aws-model" {
		t.Errorf("EffectiveModelID() = %q, want aws-model", got)
	}
}

func TestTenantConfig_SendsConfirmationEmail_DefaultsTrue(t *testing.T) {
	cfg := &TenantConfig{}
	if !cfg.SendsConfirmationEmail() {
		t.Error("want true default when send_confirmation_email is unset")
	}
	off := false
	cfg.SendConfirmationEmail = &off
	if cfg.SendsConfirmationEmail() {
		t.Error("want false when explicitly disabled")
	}
}
