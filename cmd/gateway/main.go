// Command gateway runs the assistant gateway's single streaming HTTP
// endpoint, wiring every collaborator package together. Run with -local
// to use the sqlite-backed stores instead of S3/DynamoDB/SES/SNS/Lambda,
// for development and tests without AWS credentials.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fernwell/assistant-gateway/internal/awsclients"
	"github.com/fernwell/assistant-gateway/internal/config"
	"github.com/fernwell/assistant-gateway/internal/dispatcher"
	"github.com/fernwell/assistant-gateway/internal/enhance"
	"github.com/fernwell/assistant-gateway/internal/formmode"
	"github.com/fernwell/assistant-gateway/internal/fulfillment"
	"github.com/fernwell/assistant-gateway/internal/janitor"
	"github.com/fernwell/assistant-gateway/internal/knowledge"
	"github.com/fernwell/assistant-gateway/internal/kvstore"
	"github.com/fernwell/assistant-gateway/internal/logging"
	"github.com/fernwell/assistant-gateway/internal/modelstream"
	"github.com/fernwell/assistant-gateway/internal/objectstore"
	"github.com/fernwell/assistant-gateway/internal/routing"
	"github.com/fernwell/assistant-gateway/internal/smsmeter"
	"github.com/fernwell/assistant-gateway/internal/tenantstore"

	"github.com/rs/zerolog"
)

// noopMailer, noopSMS, and noopInvoker stand in for the AWS-backed
// fulfillment channels in -local mode: there is no SES/SNS/Lambda to
// reach, so each channel just logs and reports success.
type noopMailer struct{ log zerolog.Logger }

func (n noopMailer) SendHTML(ctx context.Context, to, subject, html string) error {
	n.log.Info().Str("to", to).Str("subject", subject).Msg("local mode: email not actually sent")
	return nil
}

type noopSMS struct{ log zerolog.Logger }

func (n noopSMS) Send(ctx context.Context, to, body string) error {
	n.log.Info().Str("to", to).Msg("local mode: sms not actually sent")
	return nil
}

type noopInvoker struct{ log zerolog.Logger }

func (n noopInvoker) InvokeAsync(ctx context.Context, functionName string, payload any) error {
	n.log.Info().Str("function", functionName).Msg("local mode: nested invocation not actually dispatched")
	return nil
}

func main() {
	local := flag.Bool("local", false, "use sqlite-backed stores instead of AWS")
	sqlitePath := flag.String("sqlite-path", "gateway.db", "path to the sqlite database used in -local mode")
	flag.Parse()

	cfg := config.FromEnv()
	if *local {
		cfg.Local = true
	}

	log := logging.New(cfg.Env, cfg.Level)
	log.Info().Str("env", cfg.Env).Bool("local", cfg.Local).Msg("starting assistant gateway")
	if cfg.FileLoadError != nil {
		log.Warn().Err(cfg.FileLoadError).Msg("GATEWAY_CONFIG_FILE set but could not be applied, using env/defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		objects   objectstore.Store
		kv        interface {
			kvstore.SubmissionStore
			kvstore.CounterStore
		}
		mailer   fulfillment.Mailer
		sms      fulfillment.SMSSender
		invoker  fulfillment.NestedInvoker
		archiver fulfillment.ObjectArchiver
		kb       knowledge.Base
		router   modelstream.Router
	)

	if cfg.Local {
		sqliteObjects, err := objectstore.NewSQLiteStore(*sqlitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("opening local object store")
		}
		sqliteKV, err := kvstore.NewSQLiteStore(*sqlitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("opening local kv store")
		}
		objects = sqliteObjects
		kv = sqliteKV
		archiver = sqliteObjects
		mailer = noopMailer{log: log}
		sms = noopSMS{log: log}
		invoker = noopInvoker{log: log}
		router = modelstream.Router{Bedrock: &modelstream.Fake{Deltas: []string{"local mode has no model backend configured"}}}
	} else {
		clients, err := awsclients.Load(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("loading aws clients")
		}
		objects = objectstore.NewS3Store(clients.S3, cfg.ConfigBucket, logging.Component(log, "objectstore"))
		dynamo := kvstore.NewDynamoStore(clients.DynamoDB, cfg.FormSubmissionsTable, cfg.SMSUsageTable, logging.Component(log, "kvstore"))
		kv = dynamo
		archiver = objectstore.NewS3Store(clients.S3, cfg.ConfigBucket, logging.Component(log, "archiver"))
		mailer = awsclients.NewSESMailer(clients.SESv2, cfg.SESFromEmail)
		sms = awsclients.NewSNSSender(clients.SNS)
		invoker = awsclients.NewLambdaInvoker(clients.Lambda)
		kb = knowledge.NewBedrockBase(clients.BedrockAgent, logging.Component(log, "knowledge"))

		bedrockStreamer := modelstream.NewBedrockStreamer(clients.Bedrock, logging.Component(log, "modelstream.bedrock"))
		router = modelstream.Router{Bedrock: bedrockStreamer}
		if cfg.AnthropicAPIKey != "" {
			router.Anthropic = modelstream.NewAnthropicStreamer(cfg.AnthropicAPIKey, logging.Component(log, "modelstream.anthropic"))
		}
		if cfg.OpenAIAPIKey != "" {
			router.OpenAI = modelstream.NewOpenAIStreamer(cfg.OpenAIAPIKey, logging.Component(log, "modelstream.openai"))
		}
		if cfg.GeminiAPIKey != "" {
			geminiStreamer, err := modelstream.NewGeminiStreamer(ctx, cfg.GeminiAPIKey, logging.Component(log, "modelstream.gemini"))
			if err != nil {
				log.Warn().Err(err).Msg("gemini configured but client could not be built, model_id prefix gemini- will fall back to bedrock")
			} else {
				router.Gemini = geminiStreamer
			}
		}
	}

	tenants := tenantstore.New(objects, cfg.TenantCacheTTL, logging.Component(log, "tenantstore"))
	kbRetriever := knowledge.New(kb, cfg.KnowledgeTTL, logging.Component(log, "knowledge"))
	resolver := routing.New(logging.Component(log, "routing"))
	enhancer := enhance.New(resolver, logging.Component(log, "enhance"))
	meter := smsmeter.New(kv, logging.Component(log, "smsmeter"))

	poster := fulfillment.NewHTTPClientPoster(cfg.OutboundTimeout)
	orch := fulfillment.New(mailer, sms, poster, invoker, archiver, meter, fulfillment.Defaults{
		BubbleWebhookURL: cfg.BubbleWebhookURL,
		BubbleAPIKey:     cfg.BubbleAPIKey,
		SMSMonthlyLimit:  cfg.SMSMonthlyLimit,
	}, logging.Component(log, "fulfillment"))
	forms := formmode.NewHandler(kv, orch, mailer, logging.Component(log, "formmode"))

	sweepJanitor, err := janitor.New("*/5 * * * *", logging.Component(log, "janitor"), tenants, kbRetriever)
	if err != nil {
		log.Fatal().Err(err).Msg("constructing janitor")
	}
	sweepJanitor.Start()
	defer sweepJanitor.Stop()

	handler := dispatcher.New(tenants, kbRetriever, router, enhancer, forms, cfg, logging.Component(log, "dispatcher"))

	mux := http.NewServeMux()
	mux.Handle("/chat", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("server shutdown did not complete cleanly")
		}
	}()

	log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server exited")
	}
}
