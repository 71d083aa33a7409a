package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// Approval represents a pending or decided approval request, e.g. an AI
// reply draft or a refund awaiting human sign-off.
type Approval struct {
	ID             string          `json:"id"`
	ConversationID string          `json:"conversation_id"`
	Action         string          `json:"action"`
	Status         string          `json:"status"`
	RequestedBy    string          `json:"requested_by"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	DecidedAt      *time.Time      `json:"decided_at,omitempty"`
	DecidedBy      string          `json:"decided_by,omitempty"`
}

// ListApprovals lists approvals, optionally filtered by status.
func (c *Client) ListApprovals(ctx context.Context, status string) ([]Approval, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}

	var result []Approval
	if err := c.get(ctx, "/api/approvals", query, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetApproval retrieves an approval by ID.
func (c *Client) GetApproval(ctx context.Context, id string) (*Approval, error) {
	var result Approval
	path := fmt.Sprintf("/api/approvals/%s", url.PathEscape(id))
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ApproveApproval approves a pending approval with an optional comment.
func (c *Client) ApproveApproval(ctx context.Context, id, comment string) (*Approval, error) {
	body := struct {
		Comment string `json:"comment,omitempty"`
	}{Comment: comment}

	var result Approval
	path := fmt.Sprintf("/api/approvals/%s/approve", url.PathEscape(id))
	if err := c.post(ctx, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RejectApproval rejects a pending approval with an optional reason.
func (c *Client) RejectApproval(ctx context.Context, id, reason string) (*Approval, error) {
	body := struct {
		Reason string `json:"reason,omitempty"`
	}{Reason: reason}

	var result Approval
	path := fmt.Sprintf("/api/approvals/%s/reject", url.PathEscape(id))
	if err := c.post(ctx, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
