package api

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Integration represents a connected third-party integration.
type Integration struct {
	ID          string            `json:"id"`
	Provider    string            `json:"provider"`
	Status      string            `json:"status"`
	Settings    map[string]string `json:"settings,omitempty"`
	ConnectedAt time.Time         `json:"connected_at"`
}

// ConnectIntegrationRequest represents the POST /api/integrations request.
type ConnectIntegrationRequest struct {
	Provider string            `json:"provider"`
	Settings map[string]string `json:"settings,omitempty"`
}

// ListIntegrations lists all integrations for the workspace.
func (c *Client) ListIntegrations(ctx context.Context) ([]Integration, error) {
	var result []Integration
	if err := c.get(ctx, "/api/integrations", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ConnectIntegration connects a provider (e.g. "slack", "zendesk").
func (c *Client) ConnectIntegration(ctx context.Context, req ConnectIntegrationRequest) (*Integration, error) {
	var result Integration
	if err := c.post(ctx, "/api/integrations", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetIntegration retrieves an integration by ID.
func (c *Client) GetIntegration(ctx context.Context, id string) (*Integration, error) {
	var result Integration
	path := fmt.Sprintf("/api/integrations/%s", url.PathEscape(id))
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DisconnectIntegration disconnects and removes an integration.
func (c *Client) DisconnectIntegration(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/integrations/%s", url.PathEscape(id))
	return c.delete(ctx, path, nil)
}
