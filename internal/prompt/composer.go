// Package prompt implements C3, the Prompt Composer: assembles the final
// model prompt from role instructions, locked safety rules, history,
// retrieved context, formatting contract, and user question, in the exact
// section order spec.md §4.3 specifies.
package prompt

import (
	"fmt"
	"strings"

	"github.com/fernwell/assistant-gateway/internal/gwrequest"
	"github.com/fernwell/assistant-gateway/internal/tenantconfig"
)

// Build assembles the prompt text. Any section whose input is empty is
// omitted entirely (spec.md §4.3).
func Build(userInput, kbContext string, cfg *tenantconfig.TenantConfig, history []gwrequest.ChatMessage) string {
	var sections []string

	sections = append(sections, roleInstructions(cfg))

	if hist := historySection(history); hist != "" {
		sections = append(sections, hist)
		sections = append(sections, strings.Join([]string{
			contextInterpretationRules,
			capabilityBoundaries,
			loopPreventionRules,
		}, "\n\n"))
	}

	sections = append(sections, knowledgeSection(kbContext, cfg))

	if constraints := customConstraintsSection(cfg); constraints != "" {
		sections = append(sections, constraints)
	}

	sections = append(sections, fmt.Sprintf("CURRENT USER QUESTION: %s", userInput))

	if strings.TrimSpace(kbContext) != "" {
		sections = append(sections, noInlineCTADirective)
	}

	sections = append(sections, formattingSection(cfg))

	return joinNonEmpty(sections)
}

func roleInstructions(cfg *tenantconfig.TenantConfig) string {
	if cfg != nil {
		if v := cfg.EffectiveRoleInstructions(); strings.TrimSpace(v) != "" {
			return v
		}
	}
	return defaultRoleInstructions
}

func historySection(history []gwrequest.ChatMessage) string {
	var lines []string
	for _, turn := range history {
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		role := strings.TrimSpace(turn.Role)
		if role == "" {
			role = "user"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", titleCase(role), content))
	}
	if len(lines) == 0 {
		return ""
	}
	return fmt.Sprintf("PREVIOUS CONVERSATION:\n%s\n\n%s", strings.Join(lines, "\n"), historyReminder)
}

func titleCase(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + role[1:]
}

func knowledgeSection(kbContext string, cfg *tenantconfig.TenantConfig) string {
	if strings.TrimSpace(kbContext) == "" {
		if cfg != nil && strings.TrimSpace(cfg.FallbackMessage) != "" {
			return cfg.FallbackMessage
		}
		return ""
	}
	return strings.Join([]string{
		antiHallucinationRules,
		urlPreservationRules,
		essentialInstructions,
		fmt.Sprintf("KNOWLEDGE BASE INFORMATION:\n%s", kbContext),
	}, "\n\n")
}

func customConstraintsSection(cfg *tenantconfig.TenantConfig) string {
	if cfg == nil || len(cfg.CustomConstraints) == 0 {
		return ""
	}
	return fmt.Sprintf("CUSTOM INSTRUCTIONS:\n%s", strings.Join(cfg.CustomConstraints, "\n"))
}

func formattingSection(cfg *tenantconfig.TenantConfig) string {
	var style, detail, emoji string
	var maxEmojis int
	if cfg != nil {
		style = cfg.FormattingPreferences.ResponseStyle
		detail = cfg.FormattingPreferences.DetailLevel
		emoji = cfg.FormattingPreferences.EmojiUsage
		maxEmojis = cfg.FormattingPreferences.MaxEmojisPerResponse
	}
	return BuildFormattingContract(style, detail, emoji, maxEmojis)
}

func joinNonEmpty(sections []string) string {
	var kept []string
	for _, s := range sections {
		if strings.TrimSpace(s) != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n\n")
}
