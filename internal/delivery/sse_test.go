package delivery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suppsupport/client-go/internal/api"
)

// sseServer streams the given event payloads and then blocks until the
// client disconnects.
func sseServer(t *testing.T, payloads ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.URL.Query().Get("conversations"))

		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		flusher.Flush()

		for _, payload := range payloads {
			fmt.Fprintf(w, ": keepalive\n\ndata: %s\n\n", payload)
			flusher.Flush()
		}

		<-r.Context().Done()
	}))
}

func TestSSEStrategy_DeliversEvents(t *testing.T) {
	server := sseServer(t,
		`{"type": "message.created", "conversation_id": "conv_1", "message_id": "m1"}`,
		`not json`,
		`{"type": "approval.requested", "conversation_id": "conv_1", "approval_id": "ap_1"}`,
	)
	defer server.Close()

	events := make(chan *api.Event, 16)
	strategy := NewSSEStrategy(Config{APIClient: newAPIClient(t, server.URL)})
	defer strategy.Stop()

	err := strategy.Start(context.Background(), []ConversationInfo{{ID: "conv_1"}}, func(ctx context.Context, ev *api.Event) error {
		events <- ev
		return nil
	})
	require.NoError(t, err)

	select {
	case <-strategy.Connected():
	case <-time.After(2 * time.Second):
		t.Fatal("SSE never connected")
	}

	var got []*api.Event
	deadline := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case ev := <-events:
			got = append(got, ev)
		case <-deadline:
			t.Fatalf("timed out, got %d events", len(got))
		}
	}

	// The malformed payload is skipped.
	assert.Equal(t, api.EventMessageCreated, got[0].Type)
	assert.Equal(t, "m1", got[0].MessageID)
	assert.Equal(t, api.EventApprovalRequested, got[1].Type)
	assert.Equal(t, "ap_1", got[1].ApprovalID)
}

func TestSSEStrategy_OnReconnectFires(t *testing.T) {
	server := sseServer(t)
	defer server.Close()

	strategy := NewSSEStrategy(Config{APIClient: newAPIClient(t, server.URL)})
	defer strategy.Stop()

	reconnected := make(chan struct{}, 1)
	strategy.OnReconnect(func(ctx context.Context) {
		select {
		case reconnected <- struct{}{}:
		default:
		}
	})

	require.NoError(t, strategy.Start(context.Background(), []ConversationInfo{{ID: "conv_1"}}, nil))

	select {
	case <-reconnected:
	case <-time.After(2 * time.Second):
		t.Fatal("OnReconnect never fired")
	}
}

func TestSSEStrategy_NoConversationsIsNoop(t *testing.T) {
	strategy := NewSSEStrategy(Config{})
	require.NoError(t, strategy.Start(context.Background(), nil, nil))
	require.NoError(t, strategy.Stop())
	assert.Equal(t, "sse", strategy.Name())
}

func TestAutoStrategy_FallsBackToPolling(t *testing.T) {
	// Sync endpoint works but the events endpoint hangs without sending
	// headers... a plain 404 on /api/events also prevents SSE connect.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/events" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"event_count": 0, "events_hash": ""}`)
	}))
	defer server.Close()

	strategy := NewAutoStrategy(Config{
		APIClient:              newAPIClient(t, server.URL),
		PollingInitialInterval: 5 * time.Millisecond,
		SSEConnectionTimeout:   30 * time.Millisecond,
	})
	defer strategy.Stop()

	err := strategy.Start(context.Background(), []ConversationInfo{{ID: "conv_1"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "auto:polling", strategy.Name())
}
