// Package formmode implements the form-mode request handler (spec.md
// §4.9): field validation and form submission, bypassing the LLM
// entirely.
package formmode

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
)

// ValidationResult is the outcome of validate_field.
type ValidationResult struct {
	Success bool
	Field   string
	Errors  []string
}

// ValidateField applies the ordered rule set from spec.md §4.9. The
// field_id-specific rules only apply once the value is non-empty.
func ValidateField(fieldID, value string) ValidationResult {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ValidationResult{Field: fieldID, Errors: []string{"This field is required"}}
	}

	switch fieldID {
	case "email":
		if !emailPattern.MatchString(trimmed) {
			return ValidationResult{Field: fieldID, Errors: []string{"Please enter a valid email address"}}
		}
	case "phone":
		if !phonePattern.MatchString(trimmed) {
			return ValidationResult{Field: fieldID, Errors: []string{"Please enter a valid phone number"}}
		}
	case "age_confirm":
		if strings.EqualFold(trimmed, "no") {
			return ValidationResult{Field: fieldID, Errors: []string{"You must be at least 22 years old to volunteer"}}
		}
	case "commitment_confirm":
		if strings.EqualFold(trimmed, "no") {
			return ValidationResult{Field: fieldID, Errors: []string{"A one year commitment is required for this program"}}
		}
	}

	return ValidationResult{Success: true, Field: fieldID}
}
