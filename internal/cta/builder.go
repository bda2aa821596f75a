// Package cta builds ordered CTA card sequences from a resolved branch
// (spec.md §4.6).
package cta

import "github.com/fernwell/assistant-gateway/internal/tenantconfig"

// Card is an outbound CTA. Style is intentionally absent from this type:
// the source definition's style field must never be re-serialized
// (spec.md §8, "Style absence").
type Card struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Action   string `json:"action"`
	URL      string `json:"url,omitempty"`
	Route    string `json:"route,omitempty"`
	FormID   string `json:"form_id,omitempty"`
	Program  string `json:"program,omitempty"`
	Type     string `json:"type,omitempty"`
	Position string `json:"_position"`
}

// formIDProgram maps form IDs to their bound program when a form CTA's
// definition names none. Build uses it for both the explicit path and the
// legacy keyword path. Generic form IDs such as volunteer_apply and
// volunteer_general are not in it, and no branch-name-based mapping is
// applied, so such CTAs get no derived program.
var formIDProgram = map[string]string{
	"lb_apply": "lovebox",
	"dd_apply": "daretodream",
}

// Build implements the C6 contract: resolve primary then secondary CTAs
// for a branch, drop completed-form CTAs, truncate to max_display.
func Build(branchName string, cfg *tenantconfig.TenantConfig, completedForms []string) []Card {
	if cfg == nil {
		return nil
	}
	branch, ok := cfg.ConversationBranches[branchName]
	if !ok {
		return nil
	}

	var cards []Card
	if branch.AvailableCTAs.Primary != "" {
		if card, ok := resolve(branch.AvailableCTAs.Primary, "primary", cfg, completedForms); ok {
			cards = append(cards, card)
		}
	}
	for _, id := range branch.AvailableCTAs.Secondary {
		if card, ok := resolve(id, "secondary", cfg, completedForms); ok {
			cards = append(cards, card)
		}
	}

	max := cfg.CTASettings.EffectiveMaxDisplay()
	if len(cards) > max {
		cards = cards[:max]
	}
	return cards
}

func resolve(id, position string, cfg *tenantconfig.TenantConfig, completedForms []string) (Card, bool) {
	def, ok := cfg.CTADefinitions[id]
	if !ok {
		return Card{}, false
	}

	if def.IsFormCTA() {
		program := def.Program
		if program == "" {
			program = formIDProgram[def.FormID]
		}
		if program != "" && contains(completedForms, program) {
			return Card{}, false
		}
		return Card{
			ID: id, Label: def.Label, Action: def.Action, URL: def.URL, Route: def.Route,
			FormID: def.FormID, Program: program, Type: def.Type, Position: position,
		}, true
	}

	return Card{
		ID: id, Label: def.Label, Action: def.Action, URL: def.URL, Route: def.Route,
		FormID: def.FormID, Program: def.Program, Type: def.Type, Position: position,
	}, true
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
