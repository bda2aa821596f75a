// Package tenantconfig defines the TenantConfig document shape (spec.md
// §3) and the small accessor methods other components use instead of
// reaching into the raw maps directly.
package tenantconfig

// TenantConfig is the authoritative per-tenant document (spec.md §3).
type TenantConfig struct {
	TenantID   string `json:"tenant_id"`
	TenantHash string `json:"tenant_hash"`

	RoleInstructions string `json:"role_instructions"`
	TonePrompt       string `json:"tone_prompt"` // legacy alias, fallback only

	FormattingPreferences FormattingPreferences `json:"formatting_preferences"`
	CustomConstraints     []string              `json:"custom_constraints"`
	FallbackMessage       string                `json:"fallback_message"`

	ConversationBranches map[string]Branch        `json:"conversation_branches"`
	CTADefinitions       map[string]CTADefinition `json:"cta_definitions"`
	CTASettings          CTASettings              `json:"cta_settings"`
	ActionChips          ActionChips              `json:"action_chips"`
	ContentShowcase      []ShowcaseItem           `json:"content_showcase"`
	ConversationalForms  map[string]ConversationalForm `json:"conversational_forms"`

	BubbleIntegration      *BubbleIntegration `json:"bubble_integration,omitempty"`
	DefaultFulfillment     *Fulfillment       `json:"default_fulfillment,omitempty"`
	SendConfirmationEmail  *bool              `json:"send_confirmation_email,omitempty"`

	AWS        AWSBinding `json:"aws"`
	ModelID    string     `json:"model_id"`
	Streaming  Streaming  `json:"streaming"`
}

// SendsConfirmationEmail applies the "default true" rule from spec.md §3.
func (t *TenantConfig) SendsConfirmationEmail() bool {
	if t == nil || t.SendConfirmationEmail == nil {
		return true
	}
	return *t.SendConfirmationEmail
}

// EffectiveRoleInstructions resolves role_instructions, falling back to the
// legacy tone_prompt alias, then to the documented composer default
// (spec.md §4.3, the default is applied by the composer, not here).
func (t *TenantConfig) EffectiveRoleInstructions() string {
	if t == nil {
		return ""
	}
	if t.RoleInstructions != "" {
		return t.RoleInstructions
	}
	return t.TonePrompt
}

// EffectiveModelID prefers aws.model_id, then model_id, as spec.md §3
// describes the aws binding as authoritative for retrieval/model binding.
func (t *TenantConfig) EffectiveModelID(fallback string) string {
	if t == nil {
		return fallback
	}
	if t.AWS.ModelID != "" {
		return t.AWS.ModelID
	}
	if t.ModelID != "" {
		return t.ModelID
	}
	return fallback
}

// FormattingPreferences controls the prompt composer's style/length/emoji
// contracts (spec.md §3, §4.3).
type FormattingPreferences struct {
	ResponseStyle      string `json:"response_style"`       // professional_concise | warm_conversational | structured_detailed
	DetailLevel        string `json:"detail_level"`         // concise | balanced | comprehensive
	EmojiUsage         string `json:"emoji_usage"`          // none | minimal | moderate
	MaxEmojisPerResponse int  `json:"max_emojis_per_response"`
}

// Branch is one entry of conversation_branches.
type Branch struct {
	AvailableCTAs     AvailableCTAs `json:"available_ctas"`
	ShowcaseItemID    string        `json:"showcase_item_id,omitempty"`
	DetectionKeywords []string      `json:"detection_keywords,omitempty"` // legacy, ignored by resolver
}

// AvailableCTAs names the primary/secondary CTA IDs a branch or showcase
// item attaches.
type AvailableCTAs struct {
	Primary   string   `json:"primary,omitempty"`
	Secondary []string `json:"secondary,omitempty"`
}

// CTADefinition is one entry of cta_definitions. Style is retained here
// only so the builder can strip it; it must never be re-serialized.
type CTADefinition struct {
	Label   string `json:"label"`
	Action  string `json:"action"`
	URL     string `json:"url,omitempty"`
	Route   string `json:"route,omitempty"`
	FormID  string `json:"form_id,omitempty"`
	Program string `json:"program,omitempty"`
	Type    string `json:"type,omitempty"`
	Style   string `json:"style,omitempty"` // legacy, must be stripped outbound
}

// IsFormCTA reports whether this definition represents a form-trigger CTA
// (spec.md §4.6).
func (d CTADefinition) IsFormCTA() bool {
	return d.Action == "start_form" || d.Action == "form_trigger" || d.Type == "form_cta"
}

// CTASettings is cta_settings (spec.md §3).
type CTASettings struct {
	FallbackBranch string `json:"fallback_branch,omitempty"`
	MaxDisplay     int    `json:"max_display,omitempty"`
}

// EffectiveMaxDisplay applies the "default 3" rule.
func (s CTASettings) EffectiveMaxDisplay() int {
	if s.MaxDisplay <= 0 {
		return 3
	}
	return s.MaxDisplay
}

// ActionChip is one chip in action_chips (current schema).
type ActionChip struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Value        string `json:"value"`
	TargetBranch string `json:"target_branch,omitempty"`
}

// ActionChips supports both the current (map keyed by chip-ID) and legacy
// (ordered list) schemas, unmarshaled by the tenantconfig/decode.go custom
// UnmarshalJSON.
type ActionChips struct {
	Chips []ActionChip
}

// ShowcaseItem is one entry of content_showcase.
type ShowcaseItem struct {
	ID             string        `json:"id"`
	Type           string        `json:"type"`
	Name           string        `json:"name"`
	Tagline        string        `json:"tagline,omitempty"`
	Description    string        `json:"description"`
	ImageURL       string        `json:"image_url,omitempty"`
	Highlights     []string      `json:"highlights,omitempty"`
	AvailableCTAs  AvailableCTAs `json:"available_ctas,omitempty"`
	Enabled        bool          `json:"enabled"`
}

// FormField is one field definition inside a conversational form.
type FormField struct {
	ID         string      `json:"id"`
	Label      string      `json:"label"`
	Type       string      `json:"type,omitempty"`
	Required   bool        `json:"required,omitempty"`
	Subfields  []FormField `json:"subfields,omitempty"` // composite fields
}

// PriorityRule is one entry of a form's priority_rules.
type PriorityRule struct {
	Field    string `json:"field"`
	Value    string `json:"value"`
	Priority string `json:"priority"`
}

// ConversationalForm is one entry of conversational_forms.
type ConversationalForm struct {
	Title          string         `json:"title"`
	Enabled        bool           `json:"enabled"`
	TriggerPhrases []string       `json:"trigger_phrases"`
	Fields         []FormField    `json:"fields"`
	Fulfillment    Fulfillment    `json:"fulfillment"`
	PriorityRules  []PriorityRule `json:"priority_rules,omitempty"`
	CTAText        string         `json:"cta_text,omitempty"`
}

// Fulfillment describes how a form's submission should fan out (spec.md §4.10).
type Fulfillment struct {
	Type          string `json:"type,omitempty"` // "lambda" | "s3" | ""
	EmailTo       string `json:"email_to,omitempty"`
	SMSTo         string `json:"sms_to,omitempty"`
	WebhookURL    string `json:"webhook_url,omitempty"`
	FunctionName  string `json:"function_name,omitempty"`
	BucketName    string `json:"bucket_name,omitempty"`
}

// BubbleIntegration configures the Bubble webhook channel.
type BubbleIntegration struct {
	WebhookURL      string `json:"webhook_url,omitempty"`
	APIKey          string `json:"api_key,omitempty"`
	OrganizationName string `json:"organization_name,omitempty"`
}

// AWSBinding names the retrieval/model binding (spec.md §3).
type AWSBinding struct {
	KnowledgeBaseID string `json:"knowledge_base_id,omitempty"`
	ModelID         string `json:"model_id,omitempty"`
}

// Streaming configures the model invocation.
type Streaming struct {
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}
