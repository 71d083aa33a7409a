package supp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_OptionsOnTheWire(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/classify", r.URL.Path)

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &body))

		fmt.Fprint(w, `{"data": {
			"intent": "refund_request",
			"sentiment": "negative",
			"urgency": "high",
			"confidence": 0.93,
			"suggested_priority": "urgent",
			"language": "en"
		}}`)
	}))

	result, err := client.Classify(context.Background(), "I was charged twice!",
		WithConversation("conv_1"),
		WithChannel(ChannelEmail),
	)
	require.NoError(t, err)

	assert.Equal(t, "I was charged twice!", body["text"])
	assert.Equal(t, "conv_1", body["conversation_id"])
	assert.Equal(t, "email", body["channel"])
	assert.NotContains(t, body, "language")

	assert.Equal(t, "refund_request", result.Intent)
	assert.Equal(t, PriorityUrgent, result.SuggestedPriority)
	assert.InDelta(t, 0.93, result.Confidence, 1e-9)
}

func TestConversations_CreateAndConvert(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "Double charge", body["subject"])
		assert.Equal(t, "email", body["channel"])
		assert.Equal(t, "urgent", body["priority"])
		assert.Equal(t, []interface{}{"billing"}, body["tags"])

		fmt.Fprint(w, `{"data": {
			"id": "conv_1",
			"subject": "Double charge",
			"status": "open",
			"priority": "urgent",
			"channel": "email",
			"customer_email": "jo@example.com",
			"tags": ["billing"],
			"created_at": "2025-03-01T12:00:00Z",
			"updated_at": "2025-03-01T12:00:00Z",
			"last_message_at": "2025-03-01T12:05:00Z"
		}}`)
	}))

	conv, err := client.Conversations().Create(context.Background(),
		"Double charge", ChannelEmail, "jo@example.com",
		WithPriority(PriorityUrgent), WithTags("billing"))
	require.NoError(t, err)

	assert.Equal(t, "conv_1", conv.ID)
	assert.Equal(t, StatusOpen, conv.Status)
	assert.Equal(t, PriorityUrgent, conv.Priority)
	require.NotNil(t, conv.LastMessageAt)
	assert.Equal(t, 5*time.Minute, conv.LastMessageAt.Sub(conv.CreatedAt))
}

func TestConversations_ListPagination(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "open", q.Get("status"))
		assert.Equal(t, "10", q.Get("limit"))

		if q.Get("cursor") == "" {
			fmt.Fprint(w, `{"data": {"items": [{"id": "conv_1", "status": "open",
				"created_at": "2025-03-01T12:00:00Z", "updated_at": "2025-03-01T12:00:00Z"}],
				"next_cursor": "page2"}}`)
			return
		}
		assert.Equal(t, "page2", q.Get("cursor"))
		fmt.Fprint(w, `{"data": {"items": [{"id": "conv_2", "status": "open",
			"created_at": "2025-03-01T12:00:00Z", "updated_at": "2025-03-01T12:00:00Z"}]}}`)
	}))

	filter := ConversationFilter{Status: StatusOpen, Limit: 10}
	page, err := client.Conversations().List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "conv_1", page.Items[0].ID)
	require.Equal(t, "page2", page.NextCursor)

	filter.Cursor = page.NextCursor
	page, err = client.Conversations().List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "conv_2", page.Items[0].ID)
	assert.Empty(t, page.NextCursor)
}

func TestConversations_UpdatePartial(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)

		var body map[string]interface{}
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "pending", body["status"])
		assert.NotContains(t, body, "subject")
		assert.NotContains(t, body, "priority")
		assert.NotContains(t, body, "tags")

		fmt.Fprint(w, `{"data": {"id": "conv_1", "status": "pending",
			"created_at": "2025-03-01T12:00:00Z", "updated_at": "2025-03-01T13:00:00Z"}}`)
	}))

	conv, err := client.Conversations().Update(context.Background(), "conv_1",
		WithUpdateStatus(StatusPending))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, conv.Status)
}

func TestRouting_DecideThenAssign(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/routing/decide":
			fmt.Fprint(w, `{"data": {"conversation_id": "conv_1", "team_id": "team_billing",
				"rule_id": "rule_7", "reason": "matched billing keywords", "confidence": 0.88}}`)
		case "/api/conversations/conv_1/assign":
			var body map[string]interface{}
			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, "team_billing", body["team_id"])
			assert.NotContains(t, body, "assignee_id")

			fmt.Fprint(w, `{"data": {"id": "conv_1", "status": "open", "team_id": "team_billing",
				"created_at": "2025-03-01T12:00:00Z", "updated_at": "2025-03-01T12:00:00Z"}}`)
		default:
			http.NotFound(w, r)
		}
	}))

	decision, err := client.Routing().Decide(context.Background(), "conv_1")
	require.NoError(t, err)
	assert.Equal(t, "team_billing", decision.TeamID)
	assert.Equal(t, "rule_7", decision.RuleID)

	conv, err := client.Conversations().Assign(context.Background(), "conv_1", decision.AssigneeID, decision.TeamID)
	require.NoError(t, err)
	assert.Equal(t, "team_billing", conv.TeamID)
}

func TestRouting_CreateRule(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "billing to billing team", body["name"])
		assert.Equal(t, "team_billing", body["team_id"])
		assert.Equal(t, false, body["enabled"])

		conds, ok := body["conditions"].([]interface{})
		require.True(t, ok)
		require.Len(t, conds, 1)
		cond := conds[0].(map[string]interface{})
		assert.Equal(t, "intent", cond["field"])
		assert.Equal(t, "equals", cond["operator"])

		fmt.Fprint(w, `{"data": {"id": "rule_1", "name": "billing to billing team", "enabled": false,
			"conditions": [{"field": "intent", "operator": "equals", "value": "refund_request"}],
			"team_id": "team_billing", "position": 3,
			"created_at": "2025-03-01T12:00:00Z", "updated_at": "2025-03-01T12:00:00Z"}}`)
	}))

	rule, err := client.Routing().CreateRule(context.Background(), "billing to billing team",
		[]RuleCondition{{Field: "intent", Operator: "equals", Value: "refund_request"}},
		WithRuleTeam("team_billing"), WithRulePosition(3), WithRuleDisabled())
	require.NoError(t, err)

	assert.Equal(t, "rule_1", rule.ID)
	assert.False(t, rule.Enabled)
	require.Len(t, rule.Conditions, 1)
	assert.Equal(t, "refund_request", rule.Conditions[0].Value)
}

func TestPriorityRules_Update(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/priority-rules/pr_1", r.URL.Path)

		var body map[string]interface{}
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "urgent", body["priority"])
		assert.Equal(t, true, body["enabled"])
		assert.NotContains(t, body, "name")

		fmt.Fprint(w, `{"data": {"id": "pr_1", "name": "vip", "enabled": true, "priority": "urgent",
			"conditions": [], "position": 0,
			"created_at": "2025-03-01T12:00:00Z", "updated_at": "2025-03-02T12:00:00Z"}}`)
	}))

	rule, err := client.PriorityRules().Update(context.Background(), "pr_1",
		WithUpdateRulePriority(PriorityUrgent), WithUpdateRuleEnabled(true))
	require.NoError(t, err)
	assert.Equal(t, PriorityUrgent, rule.Priority)
	assert.True(t, rule.Enabled)
}

func TestApprovals_ApproveAndListFilter(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/approvals":
			assert.Equal(t, "pending", r.URL.Query().Get("status"))
			fmt.Fprint(w, `{"data": [{"id": "apr_1", "conversation_id": "conv_1",
				"action": "send_reply", "status": "pending", "requested_by": "assistant",
				"payload": {"draft": "We have refunded you."},
				"created_at": "2025-03-01T12:00:00Z"}]}`)
		case "/api/approvals/apr_1/approve":
			var body map[string]interface{}
			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, "looks good", body["comment"])

			fmt.Fprint(w, `{"data": {"id": "apr_1", "conversation_id": "conv_1",
				"action": "send_reply", "status": "approved", "requested_by": "assistant",
				"created_at": "2025-03-01T12:00:00Z",
				"decided_at": "2025-03-01T12:30:00Z", "decided_by": "agent_9"}}`)
		default:
			http.NotFound(w, r)
		}
	}))

	approvals, err := client.Approvals().List(context.Background(), ApprovalPending)
	require.NoError(t, err)
	require.Len(t, approvals, 1)
	assert.Equal(t, ApprovalPending, approvals[0].Status)

	var payload struct {
		Draft string `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(approvals[0].Payload, &payload))
	assert.Equal(t, "We have refunded you.", payload.Draft)

	decided, err := client.Approvals().Approve(context.Background(), "apr_1", "looks good")
	require.NoError(t, err)
	assert.Equal(t, ApprovalApproved, decided.Status)
	assert.Equal(t, "agent_9", decided.DecidedBy)
	require.NotNil(t, decided.DecidedAt)
}

func TestBilling_SetSpendCapNilClearsLimit(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/billing/spend-cap", r.URL.Path)

		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"spend_cap": null}`, string(raw))

		fmt.Fprint(w, `{"data": {"credits_remaining": 120.5, "spend_this_period": 30,
			"currency": "USD", "plan_id": "growth", "period_end": "2025-04-01T00:00:00Z"}}`)
	}))

	balance, err := client.Billing().SetSpendCap(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, balance.SpendCap)
	assert.InDelta(t, 120.5, balance.CreditsRemaining, 1e-9)
}

func TestAnalytics_OverviewConvertsDurations(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/analytics/overview", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2025-03-01T00:00:00Z", q.Get("from"))
		assert.Equal(t, "week", q.Get("granularity"))

		fmt.Fprint(w, `{"data": {"total_conversations": 200, "open_conversations": 14,
			"resolved_conversations": 170, "avg_first_response_secs": 90.5,
			"avg_resolution_secs": 3600, "deflection_rate": 0.42}}`)
	}))

	overview, err := client.Analytics().Overview(context.Background(), AnalyticsQuery{
		From:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Granularity: "week",
	})
	require.NoError(t, err)
	assert.Equal(t, 200, overview.TotalConversations)
	assert.Equal(t, 90500*time.Millisecond, overview.AvgFirstResponse)
	assert.Equal(t, time.Hour, overview.AvgResolution)
}

func TestAPIKeys_CreateReturnsSecretOnce(t *testing.T) {
	expiry := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/keys":
			if r.Method == http.MethodPost {
				var body map[string]interface{}
				raw, _ := io.ReadAll(r.Body)
				require.NoError(t, json.Unmarshal(raw, &body))
				assert.Equal(t, "ci", body["name"])
				assert.Equal(t, "2026-01-01T00:00:00Z", body["expires_at"])

				fmt.Fprint(w, `{"data": {"id": "key_1", "name": "ci", "prefix": "sk_live_ab",
					"key": "sk_live_abcdef123456", "revoked": false,
					"expires_at": "2026-01-01T00:00:00Z", "created_at": "2025-03-01T12:00:00Z"}}`)
				return
			}
			fmt.Fprint(w, `{"data": [{"id": "key_1", "name": "ci", "prefix": "sk_live_ab",
				"revoked": false, "created_at": "2025-03-01T12:00:00Z"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))

	created, err := client.APIKeys().Create(context.Background(), "ci", WithKeyExpiry(expiry))
	require.NoError(t, err)
	assert.Equal(t, "sk_live_abcdef123456", created.Key)
	assert.Equal(t, "sk_live_ab", created.Prefix)

	keys, err := client.APIKeys().List(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "key_1", keys[0].ID)
}

func TestIntegrations_ConnectAndDisconnect(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/integrations" && r.Method == http.MethodPost:
			var body map[string]interface{}
			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, "slack", body["provider"])

			fmt.Fprint(w, `{"data": {"id": "int_1", "provider": "slack", "status": "connected",
				"settings": {"channel": "#support"}, "connected_at": "2025-03-01T12:00:00Z"}}`)
		case r.URL.Path == "/api/integrations/int_1" && r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))

	integration, err := client.Integrations().Connect(context.Background(), "slack",
		map[string]string{"channel": "#support"})
	require.NoError(t, err)
	assert.Equal(t, "connected", integration.Status)
	assert.Equal(t, "#support", integration.Settings["channel"])

	require.NoError(t, client.Integrations().Disconnect(context.Background(), "int_1"))
}

func TestResources_ClosedClient(t *testing.T) {
	client := newTestClient(t, http.NotFoundHandler())
	require.NoError(t, client.Close())

	ctx := context.Background()

	_, err := client.Classify(ctx, "hello")
	assert.ErrorIs(t, err, ErrClientClosed)

	_, err = client.Conversations().Get(ctx, "conv_1")
	assert.ErrorIs(t, err, ErrClientClosed)

	_, err = client.Routing().ListRules(ctx)
	assert.ErrorIs(t, err, ErrClientClosed)

	_, err = client.Approvals().List(ctx, "")
	assert.ErrorIs(t, err, ErrClientClosed)

	_, err = client.Webhooks().List(ctx)
	assert.ErrorIs(t, err, ErrClientClosed)

	err = client.APIKeys().Revoke(ctx, "key_1")
	assert.ErrorIs(t, err, ErrClientClosed)
}
