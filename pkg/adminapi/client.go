package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/emra/admin-console/pkg/logger"
)

// UnauthorizedHandler is invoked once for every response carrying 401, after the
// session token has been cleared. It owns the global logout side effect.
type UnauthorizedHandler func(ctx context.Context, sess *Session)

// Client represents the admin REST API client
type Client struct {
	config         Config
	httpClient     *http.Client
	onUnauthorized UnauthorizedHandler
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying transport, mostly for tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUnauthorizedHandler registers the central 401 handler
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) {
		c.onUnauthorized = h
	}
}

// NewClient creates a new admin API client with the given configuration
func NewClient(config Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetConfig returns the client configuration
func (c *Client) GetConfig() Config {
	return c.config
}

// Do sends one request and returns the raw 2xx body. body is JSON encoded when non-nil.
// There are no retries: a failure is returned to the caller once.
func (c *Client) Do(ctx context.Context, sess *Session, method, path string, query url.Values, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.config.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if token := sess.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Admin API request failed", logger.Fields{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrNetwork, err)
	}

	logger.Debug("Admin API request completed", logger.Fields{
		"method":      method,
		"path":        path,
		"status_code": resp.StatusCode,
		"latency_ms":  time.Since(start).Milliseconds(),
	})

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(ctx, sess)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(respBody),
			Method:     method,
			Path:       path,
		}
	}

	return respBody, nil
}

func (c *Client) handleUnauthorized(ctx context.Context, sess *Session) {
	sess.Clear()
	logger.Warn("Admin API rejected session token", logger.Fields{
		"session_id": sess.ID(),
	})
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx, sess)
	}
}

// extractMessage pulls a human readable message out of an error body
func extractMessage(body []byte) string {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	if errResp.Message != "" {
		return errResp.Message
	}
	return errResp.Error
}

// Get decodes a single enveloped object into out
func (c *Client) Get(ctx context.Context, sess *Session, path string, query url.Values, out interface{}) error {
	return c.send(ctx, sess, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, sess *Session, path string, body, out interface{}) error {
	return c.send(ctx, sess, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, sess *Session, path string, body, out interface{}) error {
	return c.send(ctx, sess, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, sess *Session, path string, body, out interface{}) error {
	return c.send(ctx, sess, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, sess *Session, path string) error {
	return c.send(ctx, sess, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) send(ctx context.Context, sess *Session, method, path string, query url.Values, body, out interface{}) error {
	raw, err := c.Do(ctx, sess, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return DecodeData(raw, out)
}

// List fetches a collection and normalizes whatever shape the backend returns
func List[T any](ctx context.Context, c *Client, sess *Session, path string, query url.Values) ([]T, error) {
	raw, err := c.Do(ctx, sess, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return DecodeList[T](raw)
}
