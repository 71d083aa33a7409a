package api

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// PriorityRule represents a priority rule resource on the wire.
type PriorityRule struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Enabled    bool            `json:"enabled"`
	Priority   string          `json:"priority"`
	Conditions []RuleCondition `json:"conditions"`
	Position   int             `json:"position"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreatePriorityRuleRequest represents the POST /api/priority-rules request.
type CreatePriorityRuleRequest struct {
	Name       string          `json:"name"`
	Priority   string          `json:"priority"`
	Conditions []RuleCondition `json:"conditions"`
	Position   int             `json:"position,omitempty"`
	Enabled    *bool           `json:"enabled,omitempty"`
}

// UpdatePriorityRuleRequest represents the PATCH /api/priority-rules/{id}
// request. Nil fields are left unchanged.
type UpdatePriorityRuleRequest struct {
	Name       *string          `json:"name,omitempty"`
	Enabled    *bool            `json:"enabled,omitempty"`
	Priority   *string          `json:"priority,omitempty"`
	Conditions *[]RuleCondition `json:"conditions,omitempty"`
	Position   *int             `json:"position,omitempty"`
}

// ListPriorityRules lists all priority rules.
func (c *Client) ListPriorityRules(ctx context.Context) ([]PriorityRule, error) {
	var result []PriorityRule
	if err := c.get(ctx, "/api/priority-rules", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreatePriorityRule creates a priority rule.
func (c *Client) CreatePriorityRule(ctx context.Context, req CreatePriorityRuleRequest) (*PriorityRule, error) {
	var result PriorityRule
	if err := c.post(ctx, "/api/priority-rules", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPriorityRule retrieves a priority rule by ID.
func (c *Client) GetPriorityRule(ctx context.Context, id string) (*PriorityRule, error) {
	var result PriorityRule
	path := fmt.Sprintf("/api/priority-rules/%s", url.PathEscape(id))
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdatePriorityRule applies a partial update to a priority rule.
func (c *Client) UpdatePriorityRule(ctx context.Context, id string, req UpdatePriorityRuleRequest) (*PriorityRule, error) {
	var result PriorityRule
	path := fmt.Sprintf("/api/priority-rules/%s", url.PathEscape(id))
	if err := c.patch(ctx, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePriorityRule deletes a priority rule.
func (c *Client) DeletePriorityRule(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/priority-rules/%s", url.PathEscape(id))
	return c.delete(ctx, path, nil)
}
