package delivery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suppsupport/client-go/internal/api"
)

func testConfig(client *api.Client) Config {
	return Config{
		APIClient:              client,
		PollingInitialInterval: 5 * time.Millisecond,
		PollingMaxBackoff:      20 * time.Millisecond,
	}
}

func newAPIClient(t *testing.T, serverURL string) *api.Client {
	t.Helper()
	client, err := api.New("test-key", api.WithBaseURL(serverURL))
	require.NoError(t, err)
	return client
}

func TestPollingStrategy_EmitsNewMessages(t *testing.T) {
	var syncCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/conversations/conv_1/sync":
			// First poll reports hash h1, later polls h2 so the second
			// round fetches again and deduplicates already-seen messages.
			n := atomic.AddInt32(&syncCalls, 1)
			hash := "h1"
			if n > 1 {
				hash = "h2"
			}
			fmt.Fprintf(w, `{"event_count": %d, "events_hash": %q}`, n, hash)
		case "/api/conversations/conv_1/messages":
			io.WriteString(w, `[
				{"id": "m1", "conversation_id": "conv_1", "role": "customer", "body": "hi", "created_at": "2026-08-01T10:00:00Z"},
				{"id": "m2", "conversation_id": "conv_1", "role": "agent", "body": "hello", "created_at": "2026-08-01T10:01:00Z"}
			]`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	events := make(chan *api.Event, 16)
	strategy := NewPollingStrategy(testConfig(newAPIClient(t, server.URL)))
	defer strategy.Stop()

	err := strategy.Start(context.Background(), []ConversationInfo{{ID: "conv_1"}}, func(ctx context.Context, ev *api.Event) error {
		events <- ev
		return nil
	})
	require.NoError(t, err)

	seen := make(map[string]int)
	deadline := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case ev := <-events:
			assert.Equal(t, api.EventMessageCreated, ev.Type)
			assert.Equal(t, "conv_1", ev.ConversationID)
			seen[ev.MessageID]++
		case <-deadline:
			t.Fatalf("timed out waiting for events, saw %v", seen)
		}
	}

	assert.Equal(t, map[string]int{"m1": 1, "m2": 1}, seen)

	// Give the second (changed-hash) round a chance to run; messages
	// already seen must not be re-emitted.
	time.Sleep(50 * time.Millisecond)
	select {
	case ev := <-events:
		t.Errorf("duplicate event for message %s", ev.MessageID)
	default:
	}
}

func TestPollingStrategy_BacksOffWhenUnchanged(t *testing.T) {
	var syncCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&syncCalls, 1)
		io.WriteString(w, `{"event_count": 0, "events_hash": ""}`)
	}))
	defer server.Close()

	strategy := NewPollingStrategy(testConfig(newAPIClient(t, server.URL)))
	defer strategy.Stop()

	err := strategy.Start(context.Background(), []ConversationInfo{{ID: "conv_1"}}, nil)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	calls := atomic.LoadInt32(&syncCalls)

	// With a 5ms initial interval and unchanged hashes, backoff must keep
	// the call count well below the no-backoff ceiling of ~20.
	assert.Greater(t, calls, int32(1))
	assert.Less(t, calls, int32(15))
}

func TestPollingStrategy_AddRemoveConversation(t *testing.T) {
	strategy := NewPollingStrategy(testConfig(nil))

	require.NoError(t, strategy.AddConversation(ConversationInfo{ID: "conv_9"}))
	require.NoError(t, strategy.RemoveConversation("conv_9"))
	assert.Equal(t, "polling", strategy.Name())
}

func TestPollingStrategy_StopIsIdempotent(t *testing.T) {
	strategy := NewPollingStrategy(testConfig(nil))
	require.NoError(t, strategy.Start(context.Background(), nil, nil))
	require.NoError(t, strategy.Stop())
	require.NoError(t, strategy.Stop())
}
