package formmode

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fernwell/assistant-gateway/internal/fulfillment"
	"github.com/fernwell/assistant-gateway/internal/gwerr"
	"github.com/fernwell/assistant-gateway/internal/kvstore"
	"github.com/fernwell/assistant-gateway/internal/tenantconfig"
)

// SubmitResult is submit_form's success shape.
type SubmitResult struct {
	SubmissionID string
	Priority     string
	Fulfillment  []fulfillment.ChannelResult
}

// SubmitError is submit_form's failure shape.
type SubmitError struct {
	Message string
}

// Handler ties submission persistence, the fulfillment orchestrator, and
// the best-effort confirmation email together (spec.md §4.9, "Submit form").
type Handler struct {
	Submissions  kvstore.SubmissionStore
	Fulfillment  *fulfillment.Orchestrator
	Mailer       fulfillment.Mailer
	Log          zerolog.Logger
}

func NewHandler(submissions kvstore.SubmissionStore, orch *fulfillment.Orchestrator, mailer fulfillment.Mailer, log zerolog.Logger) *Handler {
	return &Handler{Submissions: submissions, Fulfillment: orch, Mailer: mailer, Log: log.With().Str("component", "formmode").Logger()}
}

// SubmitForm implements the submit_form contract. form_id, form_data, and
// tenant_config are all required; any missing produces a SubmitError.
func (h *Handler) SubmitForm(ctx context.Context, tenantID, tenantHash, formID string, formData map[string]any, cfg *tenantconfig.TenantConfig, sessionID, conversationID string) (*SubmitResult, *SubmitError) {
	if formID == "" || formData == nil || cfg == nil {
		h.Log.Warn().Str("kind", string(gwerr.KindInput)).Msg(gwerr.ErrMissingFormFields.Error())
		return nil, &SubmitError{Message: "There was an error submitting your form. Please try again."}
	}

	form, hasForm := cfg.ConversationalForms[formID]

	priority := DeterminePriority(formID, formData, toPriorityRules(form.PriorityRules))
	submissionID := fmt.Sprintf("%s_%d", formID, time.Now().UnixMilli())

	record := map[string]any{
		"tenant_id":    tenantID,
		"form_id":      formID,
		"form_data":    formData,
		"priority":     priority,
		"submitted_at": time.Now().UTC().Format(time.RFC3339),
		"status":       "pending_fulfillment",
	}
	if err := h.Submissions.PutSubmission(ctx, submissionID, record); err != nil {
		classified := gwerr.New(gwerr.KindPersistence, "persisting form submission failed, proceeding", err)
		h.Log.Warn().Err(classified).Str("submission_id", submissionID).Msg(classified.Message)
	}

	fulfillmentCfg := form.Fulfillment
	if !hasForm && cfg.DefaultFulfillment != nil {
		fulfillmentCfg = *cfg.DefaultFulfillment
	}
	results := h.Fulfillment.Fulfill(ctx, fulfillment.Submission{
		FormID:         formID,
		Form:           form,
		FormData:       formData,
		TenantID:       tenantID,
		TenantHash:     tenantHash,
		SubmissionID:   submissionID,
		Priority:       priority,
		SessionID:      sessionID,
		ConversationID: conversationID,
		Bubble:         cfg.BubbleIntegration,
	}, fulfillmentCfg)

	if email, ok := formData["email"].(string); ok && email != "" && cfg.SendsConfirmationEmail() {
		h.sendConfirmation(ctx, email, formID, submissionID)
	}

	return &SubmitResult{SubmissionID: submissionID, Priority: priority, Fulfillment: results}, nil
}

// sendConfirmation is best-effort: any failure is swallowed, only logged.
func (h *Handler) sendConfirmation(ctx context.Context, email, formID, submissionID string) {
	subject := "We received your submission"
	body := fmt.Sprintf("<p>Thanks — we received your %s submission (%s) and will be in touch.</p>", formID, submissionID)
	if err := h.Mailer.SendHTML(ctx, email, subject, body); err != nil {
		h.Log.Warn().Err(err).Str("to", email).Msg("confirmation email failed")
	}
}

func toPriorityRules(rules []tenantconfig.PriorityRule) []priorityRule {
	out := make([]priorityRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, priorityRule{Field: r.Field, Value: r.Value, Priority: r.Priority})
	}
	return out
}
