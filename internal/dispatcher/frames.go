package dispatcher

import (
	"github.com/fernwell/assistant-gateway/internal/cta"
	"github.com/fernwell/assistant-gateway/internal/enhance"
	"github.com/fernwell/assistant-gateway/internal/fulfillment"
	"github.com/fernwell/assistant-gateway/internal/showcase"
)

type ctaButtonsFrame struct {
	Type         string             `json:"type"`
	CTAButtons   []cta.Card         `json:"ctaButtons"`
	ShowcaseCard *showcase.Resolved `json:"showcaseCard,omitempty"`
	Metadata     enhance.Metadata   `json:"metadata"`
	SessionID    string             `json:"session_id,omitempty"`
}

type validationSuccessFrame struct {
	Type  string `json:"type"`
	Field string `json:"field"`
}

type validationErrorFrame struct {
	Type   string   `json:"type"`
	Field  string   `json:"field"`
	Errors []string `json:"errors"`
}

type formCompleteFrame struct {
	Type         string                       `json:"type"`
	SubmissionID string                       `json:"submission_id"`
	Priority     string                       `json:"priority"`
	Fulfillment  []fulfillment.ChannelResult  `json:"fulfillment"`
}

type formErrorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
