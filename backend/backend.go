package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 4 << 10

// Client talks to the remote prediction API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    *time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A nil hc keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each prediction call. Zero disables the timeout. A client
// passed to WithHTTPClient is copied rather than modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

// NewClient creates a Client for the given prediction endpoint. By default no
// timeout is enforced.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout != nil {
		hc := *c.httpClient
		hc.Timeout = *c.timeout
		c.httpClient = &hc
	}
	return c
}

// Predict posts url verbatim and decodes the per-model results.
func (c *Client) Predict(ctx context.Context, url string) (Predictions, error) {
	body, err := json.Marshal(Request{URL: url})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       b,
		}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var out Predictions
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if out == nil {
		// A literal null decodes without error.
		out = Predictions{}
	}
	return out, nil
}
