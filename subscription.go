package supp

import (
	"strconv"
	"sync"
	"sync/atomic"
)

// subscription represents an active conversation event subscription.
type subscription struct {
	id             string
	conversationID string
	callback       func(*ConversationEvent)
	active         atomic.Bool
}

// subscriptionManager handles conversation event subscriptions with safe
// lifecycle management. It ensures callbacks are never invoked after
// unsubscription completes.
type subscriptionManager struct {
	mu     sync.RWMutex
	subs   map[string]map[string]*subscription // conversationID -> subID -> subscription
	nextID atomic.Uint64
}

// newSubscriptionManager creates a new subscription manager.
func newSubscriptionManager() *subscriptionManager {
	return &subscriptionManager{
		subs: make(map[string]map[string]*subscription),
	}
}

// subscribe registers a callback for events on the given conversation.
// The callback will be invoked synchronously when events arrive.
// Returns an unsubscribe function that must be called to clean up.
func (m *subscriptionManager) subscribe(conversationID string, callback func(*ConversationEvent)) func() {
	id := strconv.FormatUint(m.nextID.Add(1), 10)

	sub := &subscription{
		id:             id,
		conversationID: conversationID,
		callback:       callback,
	}
	sub.active.Store(true)

	m.mu.Lock()
	if m.subs[conversationID] == nil {
		m.subs[conversationID] = make(map[string]*subscription)
	}
	m.subs[conversationID][id] = sub
	m.mu.Unlock()

	return func() {
		m.unsubscribe(conversationID, id)
	}
}

// unsubscribe removes a subscription. Safe to call multiple times.
func (m *subscriptionManager) unsubscribe(conversationID, subID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if convSubs, ok := m.subs[conversationID]; ok {
		if sub, ok := convSubs[subID]; ok {
			sub.active.Store(false) // Mark inactive before removing
			delete(convSubs, subID)
			if len(convSubs) == 0 {
				delete(m.subs, conversationID)
			}
		}
	}
}

// hasSubscribers reports whether any subscription remains for the
// conversation. Used to decide when to stop watching it.
func (m *subscriptionManager) hasSubscribers(conversationID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs[conversationID]) > 0
}

// notify calls all registered callbacks for the given conversation.
// Callbacks are invoked synchronously after releasing the read lock.
// The active flag is checked before invoking to prevent calls after unsubscribe.
func (m *subscriptionManager) notify(conversationID string, event *ConversationEvent) {
	m.mu.RLock()
	convSubs := m.subs[conversationID]
	if len(convSubs) == 0 {
		m.mu.RUnlock()
		return
	}

	// Copy subscriptions to avoid holding lock during callbacks
	subs := make([]*subscription, 0, len(convSubs))
	for _, sub := range convSubs {
		subs = append(subs, sub)
	}
	m.mu.RUnlock()

	for _, sub := range subs {
		if sub.active.Load() {
			sub.callback(event)
		}
	}
}

// clear removes all subscriptions. Called during Client.Close().
func (m *subscriptionManager) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, convSubs := range m.subs {
		for _, sub := range convSubs {
			sub.active.Store(false)
		}
	}
	m.subs = make(map[string]map[string]*subscription)
}
