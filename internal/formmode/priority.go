package formmode

import "strings"

// formTypeDefaults is the form-type default table (spec.md §4.9, rule 3).
var formTypeDefaults = map[string]string{
	"request_support": "high",
	"volunteer_apply": "normal",
	"lb_apply":        "normal",
	"dd_apply":        "normal",
	"donation":        "normal",
	"contact":         "normal",
	"newsletter":      "low",
}

// priorityRule is the package-local form of tenantconfig.PriorityRule that
// DeterminePriority takes; SubmitForm converts the config's rules with
// toPriorityRules.
type priorityRule struct {
	Field    string
	Value    string
	Priority string
}

// DeterminePriority implements the top-down rule evaluation of spec.md
// §4.9: urgency field, then config-declared priority_rules, then the
// form-type default table.
func DeterminePriority(formID string, formData map[string]any, rules []priorityRule) string {
	if urgency, ok := formData["urgency"].(string); ok {
		switch strings.ToLower(strings.TrimSpace(urgency)) {
		case "immediate", "urgent", "high":
			return "high"
		case "normal", "this week":
			return "normal"
		default:
			return "low"
		}
	}

	for _, rule := range rules {
		if v, ok := formData[rule.Field]; ok {
			if s, ok := v.(string); ok && s == rule.Value {
				return rule.Priority
			}
		}
	}

	if def, ok := formTypeDefaults[formID]; ok {
		return def
	}
	return "normal"
}
