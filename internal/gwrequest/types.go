// Package gwrequest defines the wire-level request shapes the dispatcher
// parses, plus the tagged-sum-type views other components consume instead
// of the raw optional fields (per SPEC_FULL.md §9's re-architecture note on
// ambiguous "did the caller set this" optional typing).
package gwrequest

// ChatMessage is one turn of client-supplied conversation history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionContext carries short-term client state that is never persisted
// by the core (spec.md §3, SessionContext).
type SessionContext struct {
	CompletedForms  []string `json:"completed_forms,omitempty"`
	SuspendedForms  []string `json:"suspended_forms,omitempty"`
	ProgramInterest string   `json:"program_interest,omitempty"`
}

// RoutingMetadata is the raw per-request routing hint block (spec.md §3).
type RoutingMetadata struct {
	ActionChipTriggered bool   `json:"action_chip_triggered,omitempty"`
	ActionChipID        string `json:"action_chip_id,omitempty"`
	CTATriggered        bool   `json:"cta_triggered,omitempty"`
	CTAID               string `json:"cta_id,omitempty"`
	TargetBranch        string `json:"target_branch,omitempty"`
}

// RoutingTier is the tagged-sum view of RoutingMetadata the routing
// resolver (C5) actually switches on, eliminating "is this field set"
// ambiguity at the call site.
type RoutingTier int

const (
	RoutingTierNone RoutingTier = iota
	RoutingTierActionChip
	RoutingTierCTAClick
)

// Classify collapses the raw metadata into the tier it represents. Tier 1
// (action chip) takes precedence over tier 2 (CTA click) when a caller
// erroneously sets both.
func (m RoutingMetadata) Classify() (RoutingTier, string) {
	if m.ActionChipTriggered {
		return RoutingTierActionChip, m.TargetBranch
	}
	if m.CTATriggered {
		return RoutingTierCTAClick, m.TargetBranch
	}
	return RoutingTierNone, ""
}

// SuspendedFormState is the tagged-sum view of SessionContext.SuspendedForms
// the enhancer (C8) consults: only the first suspended form is relevant.
type SuspendedFormState struct {
	FormID          string
	ProgramInterest string
}

// Suspended returns the active suspended form, if any. Only the first
// entry in SuspendedForms is consulted (spec.md §3).
func (s SessionContext) Suspended() (SuspendedFormState, bool) {
	if len(s.SuspendedForms) == 0 {
		return SuspendedFormState{}, false
	}
	return SuspendedFormState{
		FormID:          s.SuspendedForms[0],
		ProgramInterest: s.ProgramInterest,
	}, true
}

// HasCompleted reports whether the given program/form identifier is in the
// completed-forms set.
func (s SessionContext) HasCompleted(program string) bool {
	if program == "" {
		return false
	}
	for _, f := range s.CompletedForms {
		if f == program {
			return true
		}
	}
	return false
}

// ChatRequest is a normal-mode (non form-mode) inbound request (spec.md §6.1).
type ChatRequest struct {
	TenantHash          string          `json:"tenant_hash"`
	UserInput           string          `json:"user_input"`
	SessionID           string          `json:"session_id,omitempty"`
	ConversationID      string          `json:"conversation_id,omitempty"`
	ConversationHistory []ChatMessage   `json:"conversation_history,omitempty"`
	SessionContext      SessionContext  `json:"session_context,omitempty"`
	RoutingMetadata     RoutingMetadata `json:"routing_metadata,omitempty"`
}

// FormAction identifies which form-mode operation a request is for.
type FormAction string

const (
	ActionValidateField FormAction = "validate_field"
	ActionSubmitForm    FormAction = "submit_form"
)

// FormRequest is a form-mode inbound request (spec.md §6.1).
type FormRequest struct {
	TenantHash     string         `json:"tenant_hash"`
	FormMode       bool           `json:"form_mode"`
	Action         FormAction     `json:"action"`
	FormID         string         `json:"form_id,omitempty"`
	FieldID        string         `json:"field_id,omitempty"`
	FieldValue     string         `json:"field_value,omitempty"`
	FormData       map[string]any `json:"form_data,omitempty"`
	SessionID      string         `json:"session_id,omitempty"`
	ConversationID string         `json:"conversation_id,omitempty"`
	SessionContext SessionContext `json:"session_context,omitempty"`
}

// Envelope is the union the dispatcher decodes every inbound body into
// before branching to chat-mode or form-mode handling. It mirrors both
// request shapes; field presence (FormMode) decides the branch.
type Envelope struct {
	TenantHash          string          `json:"tenant_hash"`
	UserInput           string          `json:"user_input"`
	SessionID           string          `json:"session_id,omitempty"`
	ConversationID      string          `json:"conversation_id,omitempty"`
	ConversationHistory []ChatMessage   `json:"conversation_history,omitempty"`
	SessionContext      SessionContext  `json:"session_context,omitempty"`
	RoutingMetadata     RoutingMetadata `json:"routing_metadata,omitempty"`

	FormMode   bool           `json:"form_mode,omitempty"`
	Action     FormAction     `json:"action,omitempty"`
	FormID     string         `json:"form_id,omitempty"`
	FieldID    string         `json:"field_id,omitempty"`
	FieldValue string         `json:"field_value,omitempty"`
	FormData   map[string]any `json:"form_data,omitempty"`
}

func (e Envelope) AsChatRequest() ChatRequest {
	return ChatRequest{
		TenantHash:          e.TenantHash,
		UserInput:           e.UserInput,
		SessionID:           e.SessionID,
		ConversationID:      e.ConversationID,
		ConversationHistory: e.ConversationHistory,
		SessionContext:      e.SessionContext,
		RoutingMetadata:     e.RoutingMetadata,
	}
}

func (e Envelope) AsFormRequest() FormRequest {
	return FormRequest{
		TenantHash:     e.TenantHash,
		FormMode:       e.FormMode,
		Action:         e.Action,
		FormID:         e.FormID,
		FieldID:        e.FieldID,
		FieldValue:     e.FieldValue,
		FormData:       e.FormData,
		SessionID:      e.SessionID,
		ConversationID: e.ConversationID,
		SessionContext: e.SessionContext,
	}
}
