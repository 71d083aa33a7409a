package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/suppsupport/client-go/internal/apierrors"
)

// Default client configuration.
const (
	DefaultBaseURL    = "https://api.supp.support"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 2
)

// Client is the low-level HTTP API client. It owns the request dispatch
// path shared by every resource method: URL construction, authentication,
// per-attempt timeouts, retry with capped exponential backoff, and
// status-to-error mapping.
//
// A Client holds no mutable state between calls, so it is safe for
// concurrent use without coordination.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	timeout    time.Duration
	retry      RetryConfig
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL. A trailing slash is stripped.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of additional attempts after the first.
func WithRetries(retries int) Option {
	return func(c *Client) {
		c.maxRetries = retries
	}
}

// WithRetryConfig overrides the backoff schedule between attempts.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// New creates a new API client.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		maxRetries: DefaultMaxRetries,
		timeout:    DefaultTimeout,
		retry:      DefaultRetryConfig(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SetHTTPClient sets a custom HTTP client. The per-attempt timeout is
// enforced through the request context, so the client's own Timeout
// should normally be left at zero.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Do executes one logical API call described by req, decoding the response
// payload into result (which may be nil). Transient failures (5xx, network
// errors, per-attempt timeouts) are retried up to the configured budget with
// capped exponential backoff. 4xx responses are never retried. Cancelling ctx
// aborts the whole operation, including backoff sleeps between attempts.
func (c *Client) Do(ctx context.Context, req Request, result interface{}) error {
	target := c.buildURL(req)

	// GET never carries a body, regardless of what the descriptor holds.
	var payload []byte
	if req.Body != nil && req.Method != http.MethodGet {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return err
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.retry.Wait(ctx, attempt-1); err != nil {
				return err
			}
		}

		status, body, err := c.attempt(ctx, req.Method, target, payload)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				// The caller cancelled; don't burn remaining attempts.
				return ctx.Err()
			}
			lastErr = err
		case status >= 200 && status < 300:
			return decodePayload(body, result)
		case status >= 500:
			lastErr = apierrors.New(status, errorMessage(body))
		default:
			// 4xx (and the odd unredirected 3xx) signals a caller-fixable
			// condition; re-attempting without change cannot resolve it.
			return apierrors.New(status, errorMessage(body))
		}
	}

	if lastErr == nil {
		// Defined fallback; should not occur in practice.
		lastErr = apierrors.New(500, "request failed after retries")
	}
	return lastErr
}

// attempt performs exactly one physical round trip bounded by the
// per-attempt timeout. A deadline hit maps to the TIMEOUT taxonomy entry;
// any other transport failure maps to NetworkError. Both are transient.
func (c *Client) attempt(ctx context.Context, method, target string, payload []byte) (int, []byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, target, bodyReader)
	if err != nil {
		return 0, nil, &apierrors.NetworkError{Err: err, URL: target}
	}

	req.Header.Set("X-API-Key", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, c.classifyTransport(ctx, attemptCtx, err, target)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, c.classifyTransport(ctx, attemptCtx, err, target)
	}

	return resp.StatusCode, body, nil
}

// classifyTransport distinguishes a per-attempt deadline (retryable TIMEOUT)
// from other transport failures. Caller cancellation is resolved by Do.
func (c *Client) classifyTransport(ctx, attemptCtx context.Context, err error, target string) error {
	if attemptCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		return apierrors.NewTimeout()
	}
	return &apierrors.NetworkError{Err: err, URL: target}
}

func (c *Client) buildURL(req Request) string {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	return target
}

// decodePayload decodes a 2xx response body into result. Responses may wrap
// the payload in a {"data": ...} envelope; the envelope is unwrapped
// transparently when present, otherwise the raw body is used as-is.
func decodePayload(body []byte, result interface{}) error {
	if result == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	payload := body
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		payload = envelope.Data
	}

	return json.Unmarshal(payload, result)
}

// errorMessage extracts the human message from an error response body.
// Malformed or empty bodies are tolerated; the error constructor synthesizes
// a message in that case.
func errorMessage(body []byte) string {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	return errResp.Error
}
