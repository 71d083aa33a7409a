package supp

import (
	"sync"
)

// Subscription represents an active subscription that can be unsubscribed.
type Subscription interface {
	// Unsubscribe stops the subscription and releases resources.
	Unsubscribe()
}

// EventCallback is called when an event arrives on a monitored conversation.
type EventCallback func(event *ConversationEvent)

// ConversationMonitor monitors multiple conversations for events.
// It provides an event-emitter like pattern for receiving notifications.
//
// ConversationMonitor uses the client's delivery strategy (SSE, polling, or
// auto). With SSE enabled, events are delivered as push notifications.
type ConversationMonitor struct {
	client          *Client
	conversationIDs []string
	callbacks       []EventCallback
	subscriptions   []Subscription
	mu              sync.RWMutex
	started         bool
	unsubscribers   map[string]func() // conversationID -> unsubscribe function
}

// internalSubscription implements the Subscription interface.
type internalSubscription struct {
	cancel func()
}

func (s *internalSubscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Monitor creates a monitor for the given conversations. Event delivery
// starts when the first callback is registered with OnEvent.
func (c *Client) Monitor(conversationIDs ...string) *ConversationMonitor {
	return &ConversationMonitor{
		client:          c,
		conversationIDs: conversationIDs,
		callbacks:       make([]EventCallback, 0),
		unsubscribers:   make(map[string]func()),
	}
}

// OnEvent registers a callback to be called for each event on any monitored
// conversation. Returns a Subscription that can be used to unsubscribe this
// specific callback.
func (m *ConversationMonitor) OnEvent(callback EventCallback) Subscription {
	m.mu.Lock()
	m.callbacks = append(m.callbacks, callback)
	callbackIndex := len(m.callbacks) - 1
	m.mu.Unlock()

	// Start monitoring if not already started
	m.startMonitoring()

	sub := &internalSubscription{
		cancel: func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			// Mark this callback as nil (don't remove to preserve indices)
			if callbackIndex < len(m.callbacks) {
				m.callbacks[callbackIndex] = nil
			}
		},
	}

	m.mu.Lock()
	m.subscriptions = append(m.subscriptions, sub)
	m.mu.Unlock()

	return sub
}

// Unsubscribe stops monitoring all conversations and releases all resources.
func (m *ConversationMonitor) Unsubscribe() {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Unregister callbacks from the client's event system
	for _, unsub := range m.unsubscribers {
		unsub()
	}

	// Clear all callbacks and subscriptions
	m.callbacks = nil
	m.subscriptions = nil
	m.unsubscribers = make(map[string]func())
	m.started = false
}

// startMonitoring begins the monitoring process if not already started.
func (m *ConversationMonitor) startMonitoring() {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	// Register a callback with the client's event system for each conversation
	for _, id := range m.conversationIDs {
		unsub, err := m.client.registerEventCallback(id, func(event *ConversationEvent) {
			m.emitEvent(event)
		})
		if err != nil {
			continue
		}
		m.mu.Lock()
		m.unsubscribers[id] = unsub
		m.mu.Unlock()
	}
}

// emitEvent calls all registered callbacks with the event.
func (m *ConversationMonitor) emitEvent(event *ConversationEvent) {
	m.mu.RLock()
	callbacks := make([]EventCallback, len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.RUnlock()

	// Low volume expected; spawning per-event is fine.
	for _, callback := range callbacks {
		if callback != nil {
			go callback(event)
		}
	}
}
