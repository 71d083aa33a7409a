package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Event represents one server-pushed conversation event.
type Event struct {
	Type           string    `json:"type"`
	ConversationID string    `json:"conversation_id"`
	MessageID      string    `json:"message_id,omitempty"`
	ApprovalID     string    `json:"approval_id,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Event types pushed over the stream.
const (
	EventMessageCreated      = "message.created"
	EventConversationUpdated = "conversation.updated"
	EventApprovalRequested   = "approval.requested"
)

// OpenEventStream opens an SSE connection carrying events for the given
// conversations. The caller owns the response body. The connection is not
// bounded by the per-attempt timeout; it lives until ctx is cancelled or
// the server closes it.
func (c *Client) OpenEventStream(ctx context.Context, conversationIDs []string) (*http.Response, error) {
	path := fmt.Sprintf("/api/events?conversations=%s",
		url.QueryEscape(strings.Join(conversationIDs, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	return c.httpClient.Do(req)
}
