package api

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// APIKey represents an API key resource. The full secret is only returned
// at creation time.
type APIKey struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Prefix     string     `json:"prefix"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Revoked    bool       `json:"revoked"`
}

// CreatedAPIKey is the POST /api/keys response; Key is the one-time secret.
type CreatedAPIKey struct {
	APIKey
	Key string `json:"key"`
}

// CreateAPIKeyRequest represents the POST /api/keys request.
type CreateAPIKeyRequest struct {
	Name      string     `json:"name"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ListAPIKeys lists the workspace's API keys.
func (c *Client) ListAPIKeys(ctx context.Context) ([]APIKey, error) {
	var result []APIKey
	if err := c.get(ctx, "/api/keys", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateAPIKey creates a new API key.
func (c *Client) CreateAPIKey(ctx context.Context, req CreateAPIKeyRequest) (*CreatedAPIKey, error) {
	var result CreatedAPIKey
	if err := c.post(ctx, "/api/keys", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RevokeAPIKey revokes an API key by ID.
func (c *Client) RevokeAPIKey(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/keys/%s", url.PathEscape(id))
	return c.delete(ctx, path, nil)
}
