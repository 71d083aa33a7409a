package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Conversation represents a conversation resource on the wire.
type Conversation struct {
	ID            string     `json:"id"`
	Subject       string     `json:"subject"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	Channel       string     `json:"channel"`
	CustomerEmail string     `json:"customer_email"`
	AssigneeID    string     `json:"assignee_id,omitempty"`
	TeamID        string     `json:"team_id,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
}

// Message represents a single message within a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Body           string    `json:"body"`
	AuthorID       string    `json:"author_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateConversationRequest represents the POST /api/conversations request.
type CreateConversationRequest struct {
	Subject       string   `json:"subject"`
	Channel       string   `json:"channel"`
	CustomerEmail string   `json:"customer_email"`
	Priority      string   `json:"priority,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// UpdateConversationRequest represents the PATCH /api/conversations/{id}
// request. Nil fields are left unchanged.
type UpdateConversationRequest struct {
	Subject  *string   `json:"subject,omitempty"`
	Status   *string   `json:"status,omitempty"`
	Priority *string   `json:"priority,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

// ListConversationsParams filters GET /api/conversations. Zero values are
// omitted from the query string.
type ListConversationsParams struct {
	Status     string
	Priority   string
	AssigneeID string
	Limit      int
	Cursor     string
}

// ConversationPage is one page of conversation list results.
type ConversationPage struct {
	Items      []Conversation `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// AddMessageRequest represents the POST .../messages request.
type AddMessageRequest struct {
	Role     string `json:"role"`
	Body     string `json:"body"`
	AuthorID string `json:"author_id,omitempty"`
}

// ConversationSync represents the lightweight sync-status response used by
// the polling delivery strategy to detect changes without fetching messages.
type ConversationSync struct {
	EventCount int    `json:"event_count"`
	EventsHash string `json:"events_hash"`
}

// CreateConversation creates a new conversation.
func (c *Client) CreateConversation(ctx context.Context, req CreateConversationRequest) (*Conversation, error) {
	var result Conversation
	if err := c.post(ctx, "/api/conversations", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetConversation retrieves a conversation by ID.
func (c *Client) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	var result Conversation
	path := fmt.Sprintf("/api/conversations/%s", url.PathEscape(id))
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListConversations lists conversations matching the given filters.
func (c *Client) ListConversations(ctx context.Context, params ListConversationsParams) (*ConversationPage, error) {
	query := url.Values{}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Priority != "" {
		query.Set("priority", params.Priority)
	}
	if params.AssigneeID != "" {
		query.Set("assignee_id", params.AssigneeID)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Cursor != "" {
		query.Set("cursor", params.Cursor)
	}

	var result ConversationPage
	if err := c.get(ctx, "/api/conversations", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateConversation applies a partial update to a conversation.
func (c *Client) UpdateConversation(ctx context.Context, id string, req UpdateConversationRequest) (*Conversation, error) {
	var result Conversation
	path := fmt.Sprintf("/api/conversations/%s", url.PathEscape(id))
	if err := c.patch(ctx, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteConversation deletes a conversation.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/conversations/%s", url.PathEscape(id))
	return c.delete(ctx, path, nil)
}

// ListMessages lists all messages in a conversation.
func (c *Client) ListMessages(ctx context.Context, conversationID string) ([]Message, error) {
	var result []Message
	path := fmt.Sprintf("/api/conversations/%s/messages", url.PathEscape(conversationID))
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetMessage retrieves a single message in a conversation.
func (c *Client) GetMessage(ctx context.Context, conversationID, messageID string) (*Message, error) {
	var result Message
	path := fmt.Sprintf("/api/conversations/%s/messages/%s",
		url.PathEscape(conversationID), url.PathEscape(messageID))
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddMessage appends a message to a conversation.
func (c *Client) AddMessage(ctx context.Context, conversationID string, req AddMessageRequest) (*Message, error) {
	var result Message
	path := fmt.Sprintf("/api/conversations/%s/messages", url.PathEscape(conversationID))
	if err := c.post(ctx, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AssignConversation assigns a conversation to an agent and/or team.
func (c *Client) AssignConversation(ctx context.Context, id, assigneeID, teamID string) (*Conversation, error) {
	body := struct {
		AssigneeID string `json:"assignee_id,omitempty"`
		TeamID     string `json:"team_id,omitempty"`
	}{AssigneeID: assigneeID, TeamID: teamID}

	var result Conversation
	path := fmt.Sprintf("/api/conversations/%s/assign", url.PathEscape(id))
	if err := c.post(ctx, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResolveConversation marks a conversation as resolved.
func (c *Client) ResolveConversation(ctx context.Context, id string) (*Conversation, error) {
	var result Conversation
	path := fmt.Sprintf("/api/conversations/%s/resolve", url.PathEscape(id))
	if err := c.post(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetConversationSync returns the conversation's sync status.
func (c *Client) GetConversationSync(ctx context.Context, id string) (*ConversationSync, error) {
	var result ConversationSync
	path := fmt.Sprintf("/api/conversations/%s/sync", url.PathEscape(id))
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
