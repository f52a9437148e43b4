// Package api is the HTTP adapter for the Yago Market backend. It issues
// JSON requests with bearer-token headers and maps non-2xx responses onto
// the typed error taxonomy in errors.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"yagomarket/internal/session"
)

// DefaultTimeout bounds every request so a hung backend cannot hang a
// loading indicator forever.
const DefaultTimeout = 15 * time.Second

// DefaultMaxInFlight caps concurrent outbound requests across the whole
// client, image fan-out included.
const DefaultMaxInFlight = 16

// Config carries the client knobs. Zero values fall back to the defaults
// above.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxInFlight int
}

// Client talks to the backend. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Store
	logger     *zap.Logger
	sem        chan struct{} // caps concurrent outbound requests
}

// New builds a client. sessions supplies the bearer token for
// authenticated calls; it may be nil for a purely anonymous client.
func New(cfg Config, sessions *session.Store, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = DefaultMaxInFlight
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		sessions:   sessions,
		logger:     logger,
		sem:        make(chan struct{}, cfg.MaxInFlight),
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// do issues one JSON request. body and out may be nil. Non-2xx responses
// come back as *APIError; transport failures are wrapped as-is.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
	case <-ctx.Done():
		return ctx.Err()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) token() string {
	if c.sessions == nil {
		return ""
	}
	return c.sessions.Token()
}

func (c *Client) apiError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}
	var payload struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
		apiErr.Fields = payload.Errors
	}
	return apiErr
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
