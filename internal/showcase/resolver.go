// Package showcase resolves the rich content card attached to a branch
// (spec.md §4.7).
package showcase

import (
	"github.com/fernwell/assistant-gateway/internal/cta"
	"github.com/fernwell/assistant-gateway/internal/tenantconfig"
)

// Resolved is a showcase item with its CTAs resolved against cta_definitions.
type Resolved struct {
	Item      tenantconfig.ShowcaseItem `json:"item"`
	Primary   *cta.Card                 `json:"primary,omitempty"`
	Secondary []cta.Card                `json:"secondary,omitempty"`
}

// ForBranch implements the C7 contract. It returns nil when the branch has
// no showcase_item_id, the item is missing, or the item is disabled.
func ForBranch(branchName string, cfg *tenantconfig.TenantConfig) *Resolved {
	if cfg == nil {
		return nil
	}
	branch, ok := cfg.ConversationBranches[branchName]
	if !ok || branch.ShowcaseItemID == "" {
		return nil
	}

	var item *tenantconfig.ShowcaseItem
	for i := range cfg.ContentShowcase {
		if cfg.ContentShowcase[i].ID == branch.ShowcaseItemID {
			item = &cfg.ContentShowcase[i]
			break
		}
	}
	if item == nil || !item.Enabled {
		return nil
	}

	avail := item.AvailableCTAs
	if avail.Primary == "" && len(avail.Secondary) == 0 {
		avail = branch.AvailableCTAs
	}

	res := &Resolved{Item: *item}
	if avail.Primary != "" {
		if def, ok := cfg.CTADefinitions[avail.Primary]; ok {
			res.Primary = &cta.Card{
				ID: avail.Primary, Label: def.Label, Action: def.Action, URL: def.URL,
				Route: def.Route, FormID: def.FormID, Program: def.Program, Type: def.Type,
				Position: "primary",
			}
		}
	}
	for _, id := range avail.Secondary {
		def, ok := cfg.CTADefinitions[id]
		if !ok {
			continue
		}
		res.Secondary = append(res.Secondary, cta.Card{
			ID: id, Label: def.Label, Action: def.Action, URL: def.URL,
			Route: def.Route, FormID: def.FormID, Program: def.Program, Type: def.Type,
			Position: "secondary",
		})
	}
	return res
}
