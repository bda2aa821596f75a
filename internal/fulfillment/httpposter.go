package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HTTPClientPoster implements HTTPPoster with a bearer-token-aware POST,
// adapted from the teacher's pkg/shared/httputil.PostJSON shape.
type HTTPClientPoster struct {
	Timeout time.Duration
}

func NewHTTPClientPoster(timeout time.Duration) *HTTPClientPoster {
	return &HTTPClientPoster{Timeout: timeout}
}

func (p *HTTPClientPoster) PostJSON(ctx context.Context, url string, bearerToken string, payload any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	client := &http.Client{Timeout: p.Timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
