package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suppsupport/client-go/internal/apierrors"
)

func TestCheckKey_InvalidKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/check-key", r.URL.Path)
		io.WriteString(w, `{"ok": false}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.CheckKey(context.Background())
	assert.ErrorIs(t, err, apierrors.ErrUnauthorized)
}

func TestClassify_WireFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/classify", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "my order never arrived", body["text"])
		assert.Equal(t, "conv_9", body["conversation_id"])
		_, hasChannel := body["channel"]
		assert.False(t, hasChannel, "empty optional fields are omitted")

		io.WriteString(w, `{"data": {
			"intent": "order_issue",
			"sentiment": "negative",
			"urgency": "high",
			"confidence": 0.93,
			"suggested_priority": "urgent",
			"language": "en"
		}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.Classify(context.Background(), ClassifyRequest{
		Text:           "my order never arrived",
		ConversationID: "conv_9",
	})
	require.NoError(t, err)

	assert.Equal(t, "order_issue", result.Intent)
	assert.Equal(t, "negative", result.Sentiment)
	assert.InDelta(t, 0.93, result.Confidence, 1e-9)
	assert.Equal(t, "urgent", result.SuggestedPriority)
}

func TestListConversations_QueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "open", q.Get("status"))
		assert.Equal(t, "10", q.Get("limit"))
		_, hasPriority := q["priority"]
		assert.False(t, hasPriority)
		_, hasCursor := q["cursor"]
		assert.False(t, hasCursor)

		io.WriteString(w, `{"items": [{"id": "conv_1", "status": "open"}], "next_cursor": "abc"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	page, err := client.ListConversations(context.Background(), ListConversationsParams{
		Status: "open",
		Limit:  10,
	})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "conv_1", page.Items[0].ID)
	assert.Equal(t, "abc", page.NextCursor)
}

func TestAssignConversation_Body(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/conversations/conv_1/assign", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "agent_7", body["assignee_id"])
		_, hasTeam := body["team_id"]
		assert.False(t, hasTeam)

		io.WriteString(w, `{"id": "conv_1", "assignee_id": "agent_7", "status": "open"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	conv, err := client.AssignConversation(context.Background(), "conv_1", "agent_7", "")
	require.NoError(t, err)
	assert.Equal(t, "agent_7", conv.AssigneeID)
}

func TestDecideRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/routing/decide", r.URL.Path)
		io.WriteString(w, `{"conversation_id": "conv_1", "team_id": "team_billing", "rule_id": "rule_3", "reason": "matched billing intent", "confidence": 0.88}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	decision, err := client.DecideRoute(context.Background(), "conv_1")
	require.NoError(t, err)
	assert.Equal(t, "team_billing", decision.TeamID)
	assert.Equal(t, "rule_3", decision.RuleID)
}

func TestGetBalance_InsufficientBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		io.WriteString(w, `{"error": "workspace out of credits"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GetBalance(context.Background())
	assert.ErrorIs(t, err, apierrors.ErrInsufficientBalance)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "workspace out of credits", apiErr.Message)
}

func TestPathEscaping(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.DeleteConversation(context.Background(), "conv/../etc")
	require.NoError(t, err)
	assert.Equal(t, "/api/conversations/conv%2F..%2Fetc", gotPath)
}
