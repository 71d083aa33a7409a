package api

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Webhook represents a webhook endpoint registration. Secret is populated
// only on creation and rotation responses.
type Webhook struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	Active    bool      `json:"active"`
	Secret    string    `json:"secret,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateWebhookRequest represents the POST /api/webhooks request.
type CreateWebhookRequest struct {
	URL    string   `json:"url"`
	Events []string `json:"events,omitempty"`
	Active *bool    `json:"active,omitempty"`
}

// UpdateWebhookRequest represents the PATCH /api/webhooks/{id} request.
// Nil fields are left unchanged.
type UpdateWebhookRequest struct {
	URL    *string   `json:"url,omitempty"`
	Events *[]string `json:"events,omitempty"`
	Active *bool     `json:"active,omitempty"`
}

// TestWebhookResult represents the POST /api/webhooks/{id}/test response.
type TestWebhookResult struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// RotateSecretResult represents the POST /api/webhooks/{id}/rotate-secret
// response. The previous secret remains valid until PreviousValidUntil.
type RotateSecretResult struct {
	Secret             string    `json:"secret"`
	PreviousValidUntil time.Time `json:"previous_valid_until"`
}

// ListWebhooks lists all webhooks.
func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	var result []Webhook
	if err := c.get(ctx, "/api/webhooks", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateWebhook registers a new webhook endpoint.
func (c *Client) CreateWebhook(ctx context.Context, req CreateWebhookRequest) (*Webhook, error) {
	var result Webhook
	if err := c.post(ctx, "/api/webhooks", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetWebhook retrieves a webhook by ID.
func (c *Client) GetWebhook(ctx context.Context, id string) (*Webhook, error) {
	var result Webhook
	path := fmt.Sprintf("/api/webhooks/%s", url.PathEscape(id))
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateWebhook applies a partial update to a webhook.
func (c *Client) UpdateWebhook(ctx context.Context, id string, req UpdateWebhookRequest) (*Webhook, error) {
	var result Webhook
	path := fmt.Sprintf("/api/webhooks/%s", url.PathEscape(id))
	if err := c.patch(ctx, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteWebhook deletes a webhook.
func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/webhooks/%s", url.PathEscape(id))
	return c.delete(ctx, path, nil)
}

// TestWebhook asks the server to send a test delivery to the webhook.
func (c *Client) TestWebhook(ctx context.Context, id string) (*TestWebhookResult, error) {
	var result TestWebhookResult
	path := fmt.Sprintf("/api/webhooks/%s/test", url.PathEscape(id))
	if err := c.post(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RotateWebhookSecret rotates the webhook's signing secret.
func (c *Client) RotateWebhookSecret(ctx context.Context, id string) (*RotateSecretResult, error) {
	var result RotateSecretResult
	path := fmt.Sprintf("/api/webhooks/%s/rotate-secret", url.PathEscape(id))
	if err := c.post(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
