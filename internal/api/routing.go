package api

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// RoutingDecision represents the POST /api/routing/decide response.
type RoutingDecision struct {
	ConversationID string  `json:"conversation_id"`
	TeamID         string  `json:"team_id,omitempty"`
	AssigneeID     string  `json:"assignee_id,omitempty"`
	RuleID         string  `json:"rule_id,omitempty"`
	Reason         string  `json:"reason"`
	Confidence     float64 `json:"confidence"`
}

// RoutingRule represents a routing rule resource on the wire.
type RoutingRule struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Enabled    bool            `json:"enabled"`
	Conditions []RuleCondition `json:"conditions"`
	TeamID     string          `json:"team_id,omitempty"`
	AssigneeID string          `json:"assignee_id,omitempty"`
	Position   int             `json:"position"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateRoutingRuleRequest represents the POST /api/routing request.
type CreateRoutingRuleRequest struct {
	Name       string          `json:"name"`
	Conditions []RuleCondition `json:"conditions"`
	TeamID     string          `json:"team_id,omitempty"`
	AssigneeID string          `json:"assignee_id,omitempty"`
	Position   int             `json:"position,omitempty"`
	Enabled    *bool           `json:"enabled,omitempty"`
}

// UpdateRoutingRuleRequest represents the PATCH /api/routing/{id} request.
// Nil fields are left unchanged.
type UpdateRoutingRuleRequest struct {
	Name       *string          `json:"name,omitempty"`
	Enabled    *bool            `json:"enabled,omitempty"`
	Conditions *[]RuleCondition `json:"conditions,omitempty"`
	TeamID     *string          `json:"team_id,omitempty"`
	AssigneeID *string          `json:"assignee_id,omitempty"`
	Position   *int             `json:"position,omitempty"`
}

// DecideRoute asks the server for a routing decision for a conversation.
func (c *Client) DecideRoute(ctx context.Context, conversationID string) (*RoutingDecision, error) {
	body := struct {
		ConversationID string `json:"conversation_id"`
	}{ConversationID: conversationID}

	var result RoutingDecision
	if err := c.post(ctx, "/api/routing/decide", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListRoutingRules lists all routing rules.
func (c *Client) ListRoutingRules(ctx context.Context) ([]RoutingRule, error) {
	var result []RoutingRule
	if err := c.get(ctx, "/api/routing", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateRoutingRule creates a routing rule.
func (c *Client) CreateRoutingRule(ctx context.Context, req CreateRoutingRuleRequest) (*RoutingRule, error) {
	var result RoutingRule
	if err := c.post(ctx, "/api/routing", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetRoutingRule retrieves a routing rule by ID.
func (c *Client) GetRoutingRule(ctx context.Context, id string) (*RoutingRule, error) {
	var result RoutingRule
	path := fmt.Sprintf("/api/routing/%s", url.PathEscape(id))
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateRoutingRule applies a partial update to a routing rule.
func (c *Client) UpdateRoutingRule(ctx context.Context, id string, req UpdateRoutingRuleRequest) (*RoutingRule, error) {
	var result RoutingRule
	path := fmt.Sprintf("/api/routing/%s", url.PathEscape(id))
	if err := c.patch(ctx, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteRoutingRule deletes a routing rule.
func (c *Client) DeleteRoutingRule(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/routing/%s", url.PathEscape(id))
	return c.delete(ctx, path, nil)
}
