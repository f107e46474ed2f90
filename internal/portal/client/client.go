// Package client is the portal's typed HTTP adapter for the dispatch API.
// Handlers receive a *Client through constructor injection; nothing in this
// package holds process-global state, so tests can point a Client at an
// httptest server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/roadrescue/dispatch-system/internal/api/metrics"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultArrangeTimeout = 5 * time.Second
)

// Config configures a Client. Zero-valued fields get sensible defaults.
type Config struct {
	// BaseURL is the dispatch API root, e.g. "http://nginx".
	BaseURL string
	// HTTPClient overrides the underlying transport. Defaults to a client
	// with a 30s timeout.
	HTTPClient *http.Client
	Logger     zerolog.Logger
	// ArrangeTimeout bounds the tow-truck assignment call. The assignment
	// writes to the order and the truck, so it gets a tight deadline and is
	// never retried. Defaults to 5s.
	ArrangeTimeout time.Duration
}

// Client talks to the dispatch API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	log            zerolog.Logger
	arrangeTimeout time.Duration
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	arrangeTimeout := cfg.ArrangeTimeout
	if arrangeTimeout <= 0 {
		arrangeTimeout = defaultArrangeTimeout
	}
	return &Client{
		baseURL:        cfg.BaseURL,
		httpClient:     httpClient,
		log:            cfg.Logger,
		arrangeTimeout: arrangeTimeout,
	}
}

// RequestError is a non-2xx response from the dispatch API.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("dispatch api: %d %s", e.StatusCode, e.Message)
}

// doJSON performs one request against the API. token, when non-empty, is sent
// raw in the Authorization header. out, when non-nil, receives the decoded
// response body.
func (c *Client) doJSON(ctx context.Context, endpoint, method, path string, query url.Values, token string, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	// Intermediaries must never serve a cached response for session-scoped data.
	req.Header.Set("Cache-Control", "no-store")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.PortalBackendRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		c.log.Warn().Err(err).Str("endpoint", endpoint).Msg("dispatch api unreachable")
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		metrics.PortalBackendRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		reqErr := &RequestError{StatusCode: resp.StatusCode, Message: decodeErrorMessage(resp.Body)}
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Str("message", reqErr.Message).
			Msg("dispatch api request failed")
		return reqErr
	}
	metrics.PortalBackendRequestDuration.WithLabelValues(endpoint, "ok").Observe(time.Since(start).Seconds())

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return nil
}

// doBytes performs one request and returns the raw response body. Used for
// binary payloads like profile images.
func (c *Client) doBytes(ctx context.Context, endpoint, method, path, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	req.Header.Set("Cache-Control", "no-store")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.PortalBackendRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		metrics.PortalBackendRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: decodeErrorMessage(resp.Body)}
	}
	metrics.PortalBackendRequestDuration.WithLabelValues(endpoint, "ok").Observe(time.Since(start).Seconds())

	return io.ReadAll(resp.Body)
}

func decodeErrorMessage(r io.Reader) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&envelope); err != nil || envelope.Error == "" {
		return "request failed"
	}
	return envelope.Error
}
