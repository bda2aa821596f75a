// Package fulfillment fans a completed form submission out to the
// channels named by its fulfillment configuration (spec.md §4.10).
package fulfillment

import "context"

// ChannelResult is one entry of the ordered results array.
type ChannelResult struct {
	Channel  string `json:"channel"`
	Status   string `json:"status"` // sent | stored | invoked | skipped | failed
	Error    string `json:"error,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Usage    int    `json:"usage,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Function string `json:"function,omitempty"`
	Location string `json:"location,omitempty"`
}

// Mailer sends organization-facing notification email (spec.md §4.10).
type Mailer interface {
	SendHTML(ctx context.Context, to, subject, html string) error
}

// SMSSender sends a short text message.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// HTTPPoster posts a JSON payload to an arbitrary URL, used by the
// Bubble and generic webhook channels.
type HTTPPoster interface {
	PostJSON(ctx context.Context, url string, bearerToken string, payload any) (statusCode int, err error)
}

// NestedInvoker fires an async named-function invocation (spec.md §4.10,
// fulfillment.type == lambda).
type NestedInvoker interface {
	InvokeAsync(ctx context.Context, functionName string, payload any) error
}

// ObjectArchiver stores a JSON blob at a key, used by the s3 archive channel.
type ObjectArchiver interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}
