// Package enhance implements the response enhancer (spec.md §4.8): the
// rule cascade that decorates an assistant reply with CTA buttons and an
// optional showcase card.
package enhance

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fernwell/assistant-gateway/internal/cta"
	"github.com/fernwell/assistant-gateway/internal/gwerr"
	"github.com/fernwell/assistant-gateway/internal/gwrequest"
	"github.com/fernwell/assistant-gateway/internal/routing"
	"github.com/fernwell/assistant-gateway/internal/showcase"
	"github.com/fernwell/assistant-gateway/internal/tenantconfig"
)

// legacyBranchPriority is the fixed scan order for the keyword fallback
// (spec.md §4.8 rule 4).
var legacyBranchPriority = []string{
	"program_exploration",
	"volunteer_interest",
	"requirements_discussion",
	"lovebox_discussion",
	"daretodream_discussion",
}

// engagementPattern is the bounded "did the user express engagement"
// check gating the legacy keyword path.
var engagementPattern = regexp.MustCompile(`(?i)\b(tell me|more|interested|how|what|can you|could you|would like|want to)\b`)

// programNames maps program_interest values to the display name used in
// program-switch metadata (spec.md §4.8 rule 2).
var programNames = map[string]string{
	"lovebox":     "Love Box",
	"daretodream": "Dare to Dream",
	"both":        "both programs",
	"unsure":      "Volunteer",
}

// FormRef is a {form_id, program_name} pair attached to program-switch metadata.
type FormRef struct {
	FormID      string `json:"form_id"`
	ProgramName string `json:"program_name"`
}

// NewFormRef extends FormRef with the fields needed to restart the form.
type NewFormRef struct {
	FormID      string                    `json:"form_id"`
	ProgramName string                    `json:"program_name"`
	CTAText     string                    `json:"cta_text,omitempty"`
	Fields      []tenantconfig.FormField  `json:"fields,omitempty"`
}

// Metadata is the decision trail attached to every enhancer result.
type Metadata struct {
	RoutingTier            string      `json:"routing_tier,omitempty"`
	RoutingMethod          string      `json:"routing_method,omitempty"`
	Enhanced               bool        `json:"enhanced"`
	Error                  string      `json:"error,omitempty"`
	ProgramSwitchDetected  bool        `json:"program_switch_detected,omitempty"`
	SuspendedFormsDetected bool        `json:"suspended_forms_detected,omitempty"`
	SuspendedForm          *FormRef    `json:"suspended_form,omitempty"`
	NewFormOfInterest      *NewFormRef `json:"new_form_of_interest,omitempty"`
}

// Result is the enhancer's full output (spec.md §4.8 contract).
type Result struct {
	Message      string
	CTAButtons   []cta.Card
	ShowcaseCard *showcase.Resolved
	Metadata     Metadata
}

// Enhancer wires the routing resolver together with the CTA/showcase
// builders and the legacy keyword fallback.
type Enhancer struct {
	Resolver *routing.Resolver
	Log      zerolog.Logger
}

func New(resolver *routing.Resolver, log zerolog.Logger) *Enhancer {
	return &Enhancer{Resolver: resolver, Log: log.With().Str("component", "enhance").Logger()}
}

// Enhance runs the rule cascade. Failures anywhere degrade to an
// unenhanced result carrying the error string; the assistant message is
// always returned intact.
func (e *Enhancer) Enhance(assistantText, userMessage, tenantHash string, sess gwrequest.SessionContext, meta gwrequest.RoutingMetadata, cfg *tenantconfig.TenantConfig) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			classified := gwerr.New(gwerr.KindEnhancement, "enhancer panicked, degrading", fmt.Errorf("%v", r))
			e.Log.Error().Err(classified).Str("tenant_hash", tenantHash).Msg(classified.Message)
			res = Result{Message: assistantText, Metadata: Metadata{Enhanced: false, Error: classified.Error()}}
		}
	}()

	if cfg == nil {
		return Result{Message: assistantText, Metadata: Metadata{Enhanced: false, Error: "no tenant configuration"}}
	}

	// Rule 1: explicit routing path.
	if branch, method := e.Resolver.Resolve(meta, cfg); branch != "" {
		cards := cta.Build(branch, cfg, sess.CompletedForms)
		card := showcase.ForBranch(branch, cfg)
		return Result{
			Message:      assistantText,
			CTAButtons:   cards,
			ShowcaseCard: card,
			Metadata: Metadata{
				RoutingTier:   "explicit",
				RoutingMethod: string(method),
				Enhanced:      true,
			},
		}
	}

	// Rule 2: suspended-form program switch.
	if suspended, ok := sess.Suspended(); ok {
		if result, handled := e.handleSuspended(userMessage, suspended, cfg); handled {
			result.Message = assistantText
			return result
		}
	}

	// Rule 3: legacy form trigger.
	if result, handled := e.legacyFormTrigger(userMessage, sess.CompletedForms, cfg); handled {
		result.Message = assistantText
		return result
	}

	// Rule 4: legacy keyword-based enhancement.
	if !engagementPattern.MatchString(userMessage) {
		return Result{Message: assistantText, Metadata: Metadata{Enhanced: false}}
	}
	lowerAssistant := strings.ToLower(assistantText)
	for _, branchName := range legacyBranchPriority {
		branch, ok := cfg.ConversationBranches[branchName]
		if !ok {
			continue
		}
		for _, kw := range branch.DetectionKeywords {
			if kw == "" {
				continue
			}
			if strings.Contains(lowerAssistant, strings.ToLower(kw)) {
				cards := cta.Build(branchName, cfg, sess.CompletedForms)
				card := showcase.ForBranch(branchName, cfg)
				return Result{
					Message:      assistantText,
					CTAButtons:   cards,
					ShowcaseCard: card,
					Metadata:     Metadata{Enhanced: true},
				}
			}
		}
	}

	// Rule 5: no match.
	return Result{Message: assistantText, Metadata: Metadata{Enhanced: false}}
}

func (e *Enhancer) handleSuspended(userMessage string, suspended gwrequest.SuspendedFormState, cfg *tenantconfig.TenantConfig) (Result, bool) {
	detected, formID, ok := matchTriggerPhrase(userMessage, cfg)
	if !ok {
		return Result{}, false
	}
	if formID == suspended.FormID {
		return Result{Metadata: Metadata{SuspendedFormsDetected: true}}, true
	}

	suspendedForm, hasSuspendedForm := cfg.ConversationalForms[suspended.FormID]
	newForm := detected

	return Result{
		Metadata: Metadata{
			ProgramSwitchDetected: true,
			SuspendedForm: &FormRef{
				FormID:      suspended.FormID,
				ProgramName: programName(suspended.ProgramInterest, suspendedForm, hasSuspendedForm),
			},
			NewFormOfInterest: &NewFormRef{
				FormID:      formID,
				ProgramName: programName(derivedProgram(formID), newForm, true),
				CTAText:     newForm.CTAText,
				Fields:      newForm.Fields,
			},
		},
	}, true
}

func (e *Enhancer) legacyFormTrigger(userMessage string, completedForms []string, cfg *tenantconfig.TenantConfig) (Result, bool) {
	formID, form, ok := findTriggeredForm(userMessage, cfg)
	if !ok || !form.Enabled {
		return Result{}, false
	}
	program := derivedProgram(formID)
	if program != "" && contains(completedForms, program) {
		return Result{}, false
	}
	return Result{
		CTAButtons: []cta.Card{{
			ID: formID, Label: form.CTAText, Action: "start_form", Type: "form_cta", FormID: formID,
		}},
		Metadata: Metadata{Enhanced: true},
	}, true
}

// matchTriggerPhrase scans all conversational forms for one whose
// trigger_phrases match the user message.
func matchTriggerPhrase(userMessage string, cfg *tenantconfig.TenantConfig) (tenantconfig.ConversationalForm, string, bool) {
	formID, form, ok := findTriggeredForm(userMessage, cfg)
	return form, formID, ok
}

func findTriggeredForm(userMessage string, cfg *tenantconfig.TenantConfig) (string, tenantconfig.ConversationalForm, bool) {
	lower := strings.ToLower(userMessage)
	ids := make([]string, 0, len(cfg.ConversationalForms))
	for id := range cfg.ConversationalForms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		form := cfg.ConversationalForms[id]
		for _, phrase := range form.TriggerPhrases {
			if phrase == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(phrase)) {
				return id, form, true
			}
		}
	}
	return "", tenantconfig.ConversationalForm{}, false
}

// derivedProgram maps a form ID to its bound program for the legacy form
// trigger and the program-switch metadata (spec.md §4.6's mapping table).
// Only lb_apply and dd_apply are mapped; every other form ID, including
// volunteer_apply and volunteer_general, maps to "".
func derivedProgram(formID string) string {
	switch formID {
	case "lb_apply":
		return "lovebox"
	case "dd_apply":
		return "daretodream"
	default:
		return ""
	}
}

// programName resolves a display name for program-switch metadata: the
// program_interest table first, then the form's title minus the trailing
// "Application" word.
func programName(programInterest string, form tenantconfig.ConversationalForm, hasForm bool) string {
	if name, ok := programNames[programInterest]; ok {
		return name
	}
	if hasForm {
		return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(form.Title), "Application"))
	}
	return ""
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
