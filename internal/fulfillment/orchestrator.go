package fulfillment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fernwell/assistant-gateway/internal/gwerr"
	"github.com/fernwell/assistant-gateway/internal/smsmeter"
	"github.com/fernwell/assistant-gateway/internal/tenantconfig"
)

// Defaults carries the environment-level fallbacks a tenant's fulfillment
// config may omit (spec.md §6.4: BUBBLE_WEBHOOK_URL, BUBBLE_API_KEY).
type Defaults struct {
	BubbleWebhookURL string
	BubbleAPIKey     string
	SMSMonthlyLimit  int
}

// Orchestrator implements the C10 contract.
type Orchestrator struct {
	Mailer   Mailer
	SMS      SMSSender
	Poster   HTTPPoster
	Invoker  NestedInvoker
	Archiver ObjectArchiver
	Meter    *smsmeter.Meter
	Defaults Defaults
	Log      zerolog.Logger
}

func New(mailer Mailer, sms SMSSender, poster HTTPPoster, invoker NestedInvoker, archiver ObjectArchiver, meter *smsmeter.Meter, defaults Defaults, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		Mailer: mailer, SMS: sms, Poster: poster, Invoker: invoker, Archiver: archiver,
		Meter: meter, Defaults: defaults, Log: log.With().Str("component", "fulfillment").Logger(),
	}
}

// Submission bundles everything a channel needs to act on a submitted form.
type Submission struct {
	FormID         string
	Form           tenantconfig.ConversationalForm
	FormData       map[string]any
	TenantID       string
	TenantHash     string
	SubmissionID   string
	Priority       string
	SessionID      string
	ConversationID string
	Bubble         *tenantconfig.BubbleIntegration
}

// Fulfill executes each configured channel in order — Bubble, (lambda |
// s3), email, sms, webhook — independently: a channel failure never
// aborts the others (spec.md §4.10).
func (o *Orchestrator) Fulfill(ctx context.Context, sub Submission, cfg tenantconfig.Fulfillment) []ChannelResult {
	var results []ChannelResult

	if bubbleURL := o.bubbleURL(sub.Bubble); bubbleURL != "" {
		results = append(results, o.bubble(ctx, sub, bubbleURL))
	}

	switch cfg.Type {
	case "lambda":
		results = append(results, o.lambda(ctx, sub, cfg))
	case "s3":
		results = append(results, o.archive(ctx, sub, cfg))
	}

	if cfg.EmailTo != "" {
		results = append(results, o.email(ctx, sub, cfg))
	}
	if cfg.SMSTo != "" {
		results = append(results, o.sms(ctx, sub, cfg))
	}
	if cfg.WebhookURL != "" {
		results = append(results, o.webhook(ctx, sub, cfg))
	}

	return results
}

func (o *Orchestrator) bubbleURL(b *tenantconfig.BubbleIntegration) string {
	if b != nil && b.WebhookURL != "" {
		return b.WebhookURL
	}
	return o.Defaults.BubbleWebhookURL
}

func (o *Orchestrator) lambda(ctx context.Context, sub Submission, cfg tenantconfig.Fulfillment) ChannelResult {
	if cfg.FunctionName == "" {
		return ChannelResult{Channel: "lambda", Status: "skipped", Reason: "no function configured"}
	}
	payload := map[string]any{
		"action":       "form_submission",
		"form_type":    sub.FormID,
		"submission_id": sub.SubmissionID,
		"responses":    sub.FormData,
		"tenant_id":    sub.TenantID,
		"priority":     sub.Priority,
	}
	if err := o.Invoker.InvokeAsync(ctx, cfg.FunctionName, payload); err != nil {
		o.logChannelFailure(err, "lambda invocation failed", "function", cfg.FunctionName)
		return ChannelResult{Channel: "lambda", Status: "failed", Error: err.Error(), Function: cfg.FunctionName}
	}
	return ChannelResult{Channel: "lambda", Status: "invoked", Function: cfg.FunctionName}
}

func (o *Orchestrator) archive(ctx context.Context, sub Submission, cfg tenantconfig.Fulfillment) ChannelResult {
	key := fmt.Sprintf("submissions/%s/%s/%s.json", sub.TenantID, sub.FormID, sub.SubmissionID)
	body, err := marshalArchive(sub)
	if err != nil {
		return ChannelResult{Channel: "s3", Status: "failed", Error: err.Error()}
	}
	if err := o.Archiver.Put(ctx, key, body, "application/json"); err != nil {
		o.logChannelFailure(err, "archive put failed", "key", key)
		return ChannelResult{Channel: "s3", Status: "failed", Error: err.Error(), Location: key}
	}
	return ChannelResult{Channel: "s3", Status: "stored", Location: key}
}

func (o *Orchestrator) email(ctx context.Context, sub Submission, cfg tenantconfig.Fulfillment) ChannelResult {
	html := renderFormDataTable(sub.FormData, sub.Priority)
	subject := fmt.Sprintf("New %s submission", sub.FormID)
	if err := o.Mailer.SendHTML(ctx, cfg.EmailTo, subject, html); err != nil {
		o.logChannelFailure(err, "organization email failed", "to", cfg.EmailTo)
		return ChannelResult{Channel: "email", Status: "failed", Error: err.Error()}
	}
	return ChannelResult{Channel: "email", Status: "sent"}
}

func (o *Orchestrator) sms(ctx context.Context, sub Submission, cfg tenantconfig.Fulfillment) ChannelResult {
	limit := o.Defaults.SMSMonthlyLimit
	meterResult := o.Meter.CheckAndIncrement(ctx, sub.TenantID, limit)
	if !meterResult.Allowed {
		return ChannelResult{
			Channel: "sms", Status: "skipped", Reason: "monthly_limit_reached",
			Usage: meterResult.UsageAfter, Limit: meterResult.Limit,
		}
	}
	body := smsBody(sub.FormID, sub.FormData, sub.Priority)
	if err := o.SMS.Send(ctx, cfg.SMSTo, body); err != nil {
		o.logChannelFailure(err, "sms send failed", "to", cfg.SMSTo)
		return ChannelResult{Channel: "sms", Status: "failed", Error: err.Error(), Usage: meterResult.UsageAfter, Limit: meterResult.Limit}
	}
	return ChannelResult{Channel: "sms", Status: "sent", Usage: meterResult.UsageAfter, Limit: meterResult.Limit}
}

func (o *Orchestrator) webhook(ctx context.Context, sub Submission, cfg tenantconfig.Fulfillment) ChannelResult {
	payload := map[string]any{
		"form_id":       sub.FormID,
		"submission_id": sub.SubmissionID,
		"priority":      sub.Priority,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"data":          sub.FormData,
	}
	status, err := o.Poster.PostJSON(ctx, cfg.WebhookURL, "", payload)
	if err != nil || status < 200 || status >= 300 {
		msg := errString(err)
		if msg == "" {
			msg = fmt.Sprintf("webhook responded with status %d", status)
		}
		classified := gwerr.New(gwerr.KindFulfillment, "webhook post failed", err)
		o.Log.Warn().Err(classified).Str("url", cfg.WebhookURL).Int("status", status).Msg(classified.Message)
		return ChannelResult{Channel: "webhook", Status: "failed", Error: msg}
	}
	return ChannelResult{Channel: "webhook", Status: "sent"}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// logChannelFailure classifies a single-channel failure under
// gwerr.KindFulfillment so operators can filter fulfillment noise from
// the other error kinds without string-matching log messages.
func (o *Orchestrator) logChannelFailure(err error, msg, fieldKey, fieldVal string) {
	classified := gwerr.New(gwerr.KindFulfillment, msg, err)
	o.Log.Warn().Err(classified).Str(fieldKey, fieldVal).Msg(classified.Message)
}
