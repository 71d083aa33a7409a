package supp

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// newIdleMonitor builds a monitor that is already marked started, so tests
// can exercise the emit path without a live client.
func newIdleMonitor(conversationIDs ...string) *ConversationMonitor {
	return &ConversationMonitor{
		conversationIDs: conversationIDs,
		callbacks:       make([]EventCallback, 0),
		unsubscribers:   make(map[string]func()),
		started:         true,
	}
}

func TestConversationMonitor_EmitReachesAllCallbacks(t *testing.T) {
	monitor := newIdleMonitor("conv_1")

	var mu sync.Mutex
	var count1, count2 int

	monitor.OnEvent(func(*ConversationEvent) {
		mu.Lock()
		count1++
		mu.Unlock()
	})
	monitor.OnEvent(func(*ConversationEvent) {
		mu.Lock()
		count2++
		mu.Unlock()
	})

	monitor.emitEvent(&ConversationEvent{Type: EventMessageCreated, ConversationID: "conv_1"})

	// Callbacks run on their own goroutines
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count1 == 1 && count2 == 1
	}, time.Second, 5*time.Millisecond)
}

func TestConversationMonitor_SingleSubscriptionUnsubscribe(t *testing.T) {
	monitor := newIdleMonitor("conv_1")

	var mu sync.Mutex
	var kept, dropped int

	monitor.OnEvent(func(*ConversationEvent) {
		mu.Lock()
		kept++
		mu.Unlock()
	})
	sub := monitor.OnEvent(func(*ConversationEvent) {
		mu.Lock()
		dropped++
		mu.Unlock()
	})

	sub.Unsubscribe()
	monitor.emitEvent(&ConversationEvent{Type: EventMessageCreated})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return kept == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Zero(t, dropped)
	mu.Unlock()
}

func TestConversationMonitor_UnsubscribeAll(t *testing.T) {
	monitor := newIdleMonitor("conv_1")

	var mu sync.Mutex
	var calls int
	monitor.OnEvent(func(*ConversationEvent) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	monitor.Unsubscribe()
	monitor.emitEvent(&ConversationEvent{Type: EventMessageCreated})

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	assert.Zero(t, calls)
	mu.Unlock()

	// Unsubscribe is idempotent
	monitor.Unsubscribe()
}
