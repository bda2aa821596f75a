package dispatcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fernwell/assistant-gateway/internal/config"
	"github.com/fernwell/assistant-gateway/internal/enhance"
	"github.com/fernwell/assistant-gateway/internal/formmode"
	"github.com/fernwell/assistant-gateway/internal/fulfillment"
	"github.com/fernwell/assistant-gateway/internal/knowledge"
	"github.com/fernwell/assistant-gateway/internal/kvstore"
	"github.com/fernwell/assistant-gateway/internal/modelstream"
	"github.com/fernwell/assistant-gateway/internal/objectstore"
	"github.com/fernwell/assistant-gateway/internal/routing"
	"github.com/fernwell/assistant-gateway/internal/smsmeter"
	"github.com/fernwell/assistant-gateway/internal/tenantstore"
)

type noopSubmissions struct{}

func (noopSubmissions) PutSubmission(ctx context.Context, id string, item map[string]any) error { return nil }

type noopCounter struct{}

func (noopCounter) GetCount(ctx context.Context, tenantID, month string) (int, bool, error) { return 0, false, nil }
func (noopCounter) Increment(ctx context.Context, tenantID, month string) (int, error)       { return 1, nil }

type noopMailer struct{}

func (noopMailer) SendHTML(ctx context.Context, to, subject, html string) error { return nil }

type noopSMS struct{}

func (noopSMS) Send(ctx context.Context, to, body string) error { return nil }

type noopPoster struct{}

func (noopPoster) PostJSON(ctx context.Context, url, token string, payload any) (int, error) { return 200, nil }

type noopInvoker struct{}

func (noopInvoker) InvokeAsync(ctx context.Context, functionName string, payload any) error { return nil }

type noopArchiver struct{}

func (noopArchiver) Put(ctx context.Context, key string, body []byte, contentType string) error { return nil }

func newTestDispatcher(t *testing.T, fake *modelstream.Fake) *Dispatcher {
	t.Helper()
	objects, err := objectstore.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { objects.Close() })

	log := zerolog.Nop()
	tenants := tenantstore.New(objects, time.Minute, log)
	kb := knowledge.New(nil, time.Minute, log)
	resolver := routing.New(log)
	enhancer := enhance.New(resolver, log)
	meter := smsmeter.New(noopCounter{}, log)
	orch := fulfillment.New(noopMailer{}, noopSMS{}, noopPoster{}, noopInvoker{}, noopArchiver{}, meter, fulfillment.Defaults{SMSMonthlyLimit: 100}, log)
	forms := formmode.NewHandler(noopSubmissions{}, orch, noopMailer{}, log)

	cfg := config.FromEnv()
	router := modelstream.Router{Bedrock: fake}

	return New(tenants, kb, router, enhancer, forms, cfg, log)
}

var _ kvstore.SubmissionStore = noopSubmissions{}
var _ kvstore.CounterStore = noopCounter{}

func TestServeHTTP_ChatRequestEmitsExpectedFrameSequence(t *testing.T) {
	fake := &modelstream.Fake{Deltas: []string{"Hello", " there"}}
	d := newTestDispatcher(t, fake)

	body := strings.NewReader(`{"tenant_hash":"t1","user_input":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/chat", body)
	rec := httptest.NewRecorder()

	d.ServeHTTP(rec, req)

	out := rec.Body.String()
	if !strings.Contains(out, ":ok\n\n") {
		t.Errorf("missing prelude, got: %q", out)
	}
	if !strings.Contains(out, `"type":"start"`) {
		t.Errorf("missing start frame, got: %q", out)
	}
	if !strings.Contains(out, `"type":"stream_start"`) {
		t.Errorf("missing stream_start frame, got: %q", out)
	}
	if !strings.Contains(out, `"content":"Hello"`) {
		t.Errorf("missing first text delta, got: %q", out)
	}
	if !strings.HasSuffix(strings.TrimRight(out, "\n"), "[DONE]") {
		t.Errorf("stream did not terminate with [DONE], got: %q", out)
	}
}

func TestServeHTTP_MissingTenantHashEmitsErrorFrame(t *testing.T) {
	d := newTestDispatcher(t, &modelstream.Fake{})
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"user_input":"hi"}`))
	rec := httptest.NewRecorder()

	d.ServeHTTP(rec, req)

	out := rec.Body.String()
	if !strings.Contains(out, `"type":"error"`) || !strings.Contains(out, "tenant_hash") {
		t.Errorf("want tenant_hash error frame, got: %q", out)
	}
	if !strings.Contains(out, "[DONE]") {
		t.Errorf("want stream still closed with [DONE], got: %q", out)
	}
}

func TestServeHTTP_FormModeValidateField(t *testing.T) {
	d := newTestDispatcher(t, &modelstream.Fake{})
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(
		`{"tenant_hash":"t1","form_mode":true,"action":"validate_field","field_id":"email","field_value":"not-an-email"}`))
	rec := httptest.NewRecorder()

	d.ServeHTTP(rec, req)

	out := rec.Body.String()
	if !strings.Contains(out, `"type":"validation_error"`) {
		t.Errorf("want validation_error frame, got: %q", out)
	}
}

func TestServeHTTP_OptionsPreflight(t *testing.T) {
	d := newTestDispatcher(t, &modelstream.Fake{})
	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	rec := httptest.NewRecorder()

	d.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Errorf("missing CORS header on preflight")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("preflight body = %q, want empty", rec.Body.String())
	}
}
