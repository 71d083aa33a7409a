package api

import (
	"context"

	"github.com/suppsupport/client-go/internal/apierrors"
)

// CheckKey validates the API key.
func (c *Client) CheckKey(ctx context.Context) error {
	var result struct {
		OK bool `json:"ok"`
	}
	if err := c.get(ctx, "/api/check-key", nil, &result); err != nil {
		return err
	}
	if !result.OK {
		return apierrors.ErrUnauthorized
	}
	return nil
}

// GetWorkspace retrieves the workspace configuration for the API key.
func (c *Client) GetWorkspace(ctx context.Context) (*Workspace, error) {
	var result Workspace
	if err := c.get(ctx, "/api/workspace", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
