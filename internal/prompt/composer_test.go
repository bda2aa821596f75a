package prompt

import (
	"strings"
	"testing"

	"github.com/fernwell/assistant-gateway/internal/gwrequest"
	"github.com/fernwell/assistant-gateway/internal/tenantconfig"
)

func TestBuild_SectionOrderAndOmission(t *testing.T) {
	cfg := &tenantconfig.TenantConfig{RoleInstructions: "Be kind."}
	got := Build("What is Love Box?", "", cfg, nil)

	roleIdx := strings.Index(got, "Be kind.")
	questionIdx := strings.Index(got, "CURRENT USER QUESTION")
	formattingIdx := strings.Index(got, "FORMATTING CONTRACT")

	if roleIdx == -1 || questionIdx == -1 || formattingIdx == -1 {
		t.Fatalf("missing expected sections in prompt: %s", got)
	}
	if !(roleIdx < questionIdx && questionIdx < formattingIdx) {
		t.Errorf("expected role < question < formatting ordering, got indices %d %d %d", roleIdx, questionIdx, formattingIdx)
	}
	if strings.Contains(got, "PREVIOUS CONVERSATION") {
		t.Error("empty history should omit the previous-conversation section")
	}
	if strings.Contains(got, "KNOWLEDGE BASE INFORMATION") {
		t.Error("empty kb context should omit the knowledge section")
	}
}

func TestBuild_FallbackMessageWhenContextEmpty(t *testing.T) {
	cfg := &tenantconfig.TenantConfig{FallbackMessage: "I don't have that information yet."}
	got := Build("anything", "", cfg, nil)
	if !strings.Contains(got, "I don't have that information yet.") {
		t.Errorf("expected fallback_message to appear in prompt, got: %s", got)
	}
}

func TestBuild_HistoryTriggersLockedSafetyBlocks(t *testing.T) {
	cfg := &tenantconfig.TenantConfig{}
	history := []gwrequest.ChatMessage{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}}
	got := Build("tell me more", "", cfg, history)
	for _, marker := range []string{"CONTEXT INTERPRETATION RULES", "CAPABILITY BOUNDARIES", "LOOP PREVENTION RULES"} {
		if !strings.Contains(got, marker) {
			t.Errorf("expected locked block %q in prompt with non-empty history", marker)
		}
	}
}

func TestBuild_NoInlineCTAOnlyWhenKBContextPresent(t *testing.T) {
	cfg := &tenantconfig.TenantConfig{}
	withKB := Build("q", "some context", cfg, nil)
	withoutKB := Build("q", "", cfg, nil)
	if !strings.Contains(withKB, "Do not include action phrases") {
		t.Error("expected no-inline-cta directive when kb_context is non-empty")
	}
	if strings.Contains(withoutKB, "Do not include action phrases") {
		t.Error("did not expect no-inline-cta directive when kb_context is empty")
	}
}

func TestBuild_BlankHistoryTurnsAreDropped(t *testing.T) {
	cfg := &tenantconfig.TenantConfig{}
	history := []gwrequest.ChatMessage{{Role: "user", Content: "   "}, {Role: "assistant", Content: "real content"}}
	got := Build("q", "", cfg, history)
	if strings.Contains(got, "User:    ") {
		t.Error("blank history turn should have been dropped")
	}
	if !strings.Contains(got, "real content") {
		t.Error("non-blank history turn should be present")
	}
}

func TestBuildFormattingContract_UnknownValuesFallBackToDefaults(t *testing.T) {
	got := BuildFormattingContract("bogus", "bogus", "bogus", 0)
	if !strings.Contains(got, "professional and concise") {
		t.Error("expected fallback to professional_concise style")
	}
	if !strings.Contains(got, "4-6 sentences") {
		t.Error("expected fallback to balanced length")
	}
	if !strings.Contains(got, "do not use any emoji") {
		t.Error("expected fallback to no-emoji rule")
	}
}
