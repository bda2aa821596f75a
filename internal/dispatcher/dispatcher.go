// Package dispatcher implements C12, the Request Dispatcher: the single
// streaming HTTP endpoint tying every other component together.
package dispatcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/fernwell/assistant-gateway/internal/config"
	"github.com/fernwell/assistant-gateway/internal/enhance"
	"github.com/fernwell/assistant-gateway/internal/formmode"
	"github.com/fernwell/assistant-gateway/internal/gwerr"
	"github.com/fernwell/assistant-gateway/internal/gwrequest"
	"github.com/fernwell/assistant-gateway/internal/knowledge"
	"github.com/fernwell/assistant-gateway/internal/modelstream"
	"github.com/fernwell/assistant-gateway/internal/prompt"
	"github.com/fernwell/assistant-gateway/internal/tenantconfig"
	"github.com/fernwell/assistant-gateway/internal/tenantstore"
)

// Dispatcher wires every component the HTTP surface depends on.
type Dispatcher struct {
	Tenants   *tenantstore.Store
	Knowledge *knowledge.Retriever
	Router    modelstream.Router
	Enhancer  *enhance.Enhancer
	Forms     *formmode.Handler
	Config    *config.Config
	Log       zerolog.Logger
}

func New(tenants *tenantstore.Store, kb *knowledge.Retriever, router modelstream.Router, enhancer *enhance.Enhancer, forms *formmode.Handler, cfg *config.Config, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		Tenants: tenants, Knowledge: kb, Router: router, Enhancer: enhancer, Forms: forms,
		Config: cfg, Log: log.With().Str("component", "dispatcher").Logger(),
	}
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeCORSHeaders(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	ctx, cancel := context.WithTimeout(r.Context(), d.Config.RequestTimeout)
	defer cancel()

	wr := newWriter(w, flusher)
	defer wr.close()

	wr.send(framePrelude)
	wr.send(newStartFrame())

	var env gwrequest.Envelope
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		wr.send(newErrorFrame(err.Error()))
		wr.send(frameDone)
		return
	}
	if err := json.Unmarshal(body, &env); err != nil {
		wr.send(newErrorFrame("malformed request body"))
		wr.send(frameDone)
		return
	}

	if strings.TrimSpace(env.TenantHash) == "" {
		wr.send(newErrorFrame(gwerr.ErrMissingTenantHash.Error()))
		wr.send(frameDone)
		return
	}

	if env.FormMode {
		d.handleForm(ctx, wr, env.AsFormRequest())
		wr.send(frameDone)
		return
	}

	chatReq := env.AsChatRequest()
	if strings.TrimSpace(chatReq.UserInput) == "" {
		wr.send(newErrorFrame(gwerr.ErrMissingUserInput.Error()))
		wr.send(frameDone)
		return
	}
	if strings.TrimSpace(chatReq.SessionID) == "" {
		chatReq.SessionID = xid.New().String()
	}
	d.handleChat(ctx, wr, chatReq)
	wr.send(frameDone)
}

func (d *Dispatcher) resolveTenant(ctx context.Context, tenantHash string) *tenantconfig.TenantConfig {
	cfg := d.Tenants.Load(ctx, tenantHash)
	if cfg == nil {
		classified := gwerr.New(gwerr.KindConfigAbsent, "no tenant config resolved, using defaults", nil)
		d.Log.Warn().Err(classified).Str("tenant_hash", tenantHash).Str("kind", string(gwerr.KindConfigAbsent)).Msg(classified.Message)
		cfg = tenantstore.Default(d.Config.BedrockModelID)
		cfg.TenantHash = tenantHash
	}
	return cfg
}

func (d *Dispatcher) handleChat(ctx context.Context, wr *writer, req gwrequest.ChatRequest) {
	cfg := d.resolveTenant(ctx, req.TenantHash)

	kbContext := d.Knowledge.Retrieve(ctx, req.UserInput, cfg.AWS.KnowledgeBaseID)
	promptText := prompt.Build(req.UserInput, kbContext, cfg, req.ConversationHistory)
	modelID := cfg.EffectiveModelID(d.Config.BedrockModelID)
	streamer := d.Router.Select(modelID)

	start := time.Now()
	heartbeat := newHeartbeatTicker(d.Config.HeartbeatEvery, wr)
	defer heartbeat.stop()

	events, err := streamer.Stream(ctx, modelstream.Params{
		Prompt:      promptText,
		ModelID:     modelID,
		MaxTokens:   cfg.Streaming.MaxTokens,
		Temperature: cfg.Streaming.Temperature,
	})
	if err != nil {
		heartbeat.stop()
		classified := gwerr.New(gwerr.KindGeneration, "model stream failed to start", err)
		d.Log.Warn().Err(classified).Str("kind", string(gwerr.KindGeneration)).Msg("chat request failed")
		wr.send(newErrorFrame(classified.Error()))
		return
	}

	var assistantText strings.Builder
	firstTokenSent := false
	for ev := range events {
		switch ev.Type {
		case modelstream.EventDelta:
			if !firstTokenSent {
				firstTokenSent = true
				heartbeat.stop()
				wr.send(newStreamStartFrame())
				wr.send(commentFrame("x-first-token-ms", time.Since(start).Milliseconds()))
			}
			assistantText.WriteString(ev.Delta)
			wr.send(newTextFrame(ev.Delta, req.SessionID))
		case modelstream.EventError:
			heartbeat.stop()
			classified := gwerr.New(gwerr.KindGeneration, "model stream interrupted", ev.Err)
			d.Log.Warn().Err(classified).Str("kind", string(gwerr.KindGeneration)).Msg("chat request failed mid-stream")
			wr.send(newErrorFrame(classified.Error()))
		case modelstream.EventStop:
			// terminal; loop exits when channel closes.
		}
	}
	heartbeat.stop()
	wr.send(commentFrame("x-total-time-ms", time.Since(start).Milliseconds()))

	result := d.Enhancer.Enhance(assistantText.String(), req.UserInput, req.TenantHash, req.SessionContext, req.RoutingMetadata, cfg)
	if shouldEmitCTAFrame(result) {
		wr.send(dataFrame(ctaButtonsFrame{
			Type:         "cta_buttons",
			CTAButtons:   result.CTAButtons,
			ShowcaseCard: result.ShowcaseCard,
			Metadata:     result.Metadata,
			SessionID:    req.SessionID,
		}))
	}
}

// shouldEmitCTAFrame omits the frame only when there is nothing useful to
// carry: no CTAs, no showcase, and no metadata signal the client needs
// (spec.md §4.12, step 5).
func shouldEmitCTAFrame(result enhance.Result) bool {
	if len(result.CTAButtons) > 0 || result.ShowcaseCard != nil {
		return true
	}
	return result.Metadata.ProgramSwitchDetected || result.Metadata.SuspendedFormsDetected
}

func (d *Dispatcher) handleForm(ctx context.Context, wr *writer, req gwrequest.FormRequest) {
	switch req.Action {
	case gwrequest.ActionValidateField:
		res := formmode.ValidateField(req.FieldID, req.FieldValue)
		if res.Success {
			wr.send(dataFrame(validationSuccessFrame{Type: "validation_success", Field: res.Field}))
			return
		}
		wr.send(dataFrame(validationErrorFrame{Type: "validation_error", Field: res.Field, Errors: res.Errors}))

	case gwrequest.ActionSubmitForm:
		cfg := d.resolveTenant(ctx, req.TenantHash)
		result, submitErr := d.Forms.SubmitForm(ctx, cfg.TenantID, req.TenantHash, req.FormID, req.FormData, cfg, req.SessionID, req.ConversationID)
		if submitErr != nil {
			wr.send(dataFrame(formErrorFrame{Type: "form_error", Error: submitErr.Message}))
			return
		}
		wr.send(dataFrame(formCompleteFrame{
			Type:         "form_complete",
			SubmissionID: result.SubmissionID,
			Priority:     result.Priority,
			Fulfillment:  result.Fulfillment,
		}))

	default:
		wr.send(newErrorFrame(gwerr.ErrUnknownAction.Error()))
	}
}

func writeCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}
