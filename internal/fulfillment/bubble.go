package fulfillment

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/fernwell/assistant-gateway/internal/tenantconfig"
)

// bubbleEnvelope is the fixed-schema payload the Bubble integration
// channel posts (spec.md §4.10).
type bubbleEnvelope struct {
	SubmissionID     string `json:"submission_id"`
	Timestamp        string `json:"timestamp"`
	TenantID         string `json:"tenant_id"`
	TenantHash       string `json:"tenant_hash"`
	OrganizationName string `json:"organization_name,omitempty"`
	FormID           string `json:"form_id"`
	FormTitle        string `json:"form_title"`
	ProgramID        string `json:"program_id,omitempty"`
	SessionID        string `json:"session_id,omitempty"`
	ConversationID   string `json:"conversation_id,omitempty"`
	FormData         string `json:"form_data"`
}

func (o *Orchestrator) bubble(ctx context.Context, sub Submission, webhookURL string) ChannelResult {
	humanized, err := json.Marshal(humanizeFormData(sub.FormData, sub.Form))
	if err != nil {
		return ChannelResult{Channel: "bubble", Status: "failed", Error: err.Error()}
	}

	env := bubbleEnvelope{
		SubmissionID:   sub.SubmissionID,
		Timestamp:      nowRFC3339(),
		TenantID:       sub.TenantID,
		TenantHash:     sub.TenantHash,
		FormID:         sub.FormID,
		FormTitle:      sub.Form.Title,
		SessionID:      sub.SessionID,
		ConversationID: sub.ConversationID,
		FormData:       string(humanized),
	}
	if sub.Bubble != nil {
		env.OrganizationName = sub.Bubble.OrganizationName
	}

	var token string
	if sub.Bubble != nil {
		token = sub.Bubble.APIKey
	}
	if token == "" {
		token = o.Defaults.BubbleAPIKey
	}

	status, err := o.Poster.PostJSON(ctx, webhookURL, token, env)
	if err != nil || status < 200 || status >= 300 {
		msg := errString(err)
		if msg == "" {
			msg = "bubble webhook returned non-2xx status"
		}
		o.Log.Warn().Str("url", webhookURL).Int("status", status).Msg("bubble post failed")
		return ChannelResult{Channel: "bubble", Status: "failed", Error: msg}
	}
	return ChannelResult{Channel: "bubble", Status: "sent"}
}

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

func normalizeLabel(label string) string {
	s := nonAlnumRun.ReplaceAllString(strings.ToLower(label), "_")
	return strings.Trim(s, "_")
}

// humanizeFormData renders form_data under human-readable keys derived
// from the form's field definitions (spec.md §4.10). Simple fields use
// their label normalized to snake_case; composite fields expose each
// subfield by the subfield's normalized label; unknown keys fall back to
// the portion after the last '.'.
func humanizeFormData(formData map[string]any, form tenantconfig.ConversationalForm) map[string]any {
	labels := map[string]string{}
	for _, f := range form.Fields {
		if len(f.Subfields) > 0 {
			for _, sub := range f.Subfields {
				labels[f.ID+"."+sub.ID] = normalizeLabel(sub.Label)
			}
			continue
		}
		labels[f.ID] = normalizeLabel(f.Label)
	}

	out := make(map[string]any, len(formData))
	for key, value := range formData {
		if label, ok := labels[key]; ok {
			out[label] = value
			continue
		}
		if idx := strings.LastIndex(key, "."); idx >= 0 {
			out[key[idx+1:]] = value
			continue
		}
		out[key] = value
	}
	return out
}
