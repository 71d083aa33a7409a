package delivery

import (
	"context"
	"sync"
	"time"
)

// AutoStrategy tries SSE first and falls back to polling if the stream is
// not established within the configured connection timeout.
type AutoStrategy struct {
	cfg         Config
	current     Strategy
	onReconnect func(ctx context.Context)
	mu          sync.Mutex
}

// NewAutoStrategy creates a new auto strategy.
func NewAutoStrategy(cfg Config) *AutoStrategy {
	return &AutoStrategy{cfg: cfg.withDefaults()}
}

// Name returns the strategy name.
func (a *AutoStrategy) Name() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current != nil {
		return "auto:" + a.current.Name()
	}
	return "auto"
}

// Start begins listening for events, trying SSE first.
func (a *AutoStrategy) Start(ctx context.Context, conversations []ConversationInfo, handler EventHandler) error {
	sse := NewSSEStrategy(a.cfg)
	a.mu.Lock()
	if a.onReconnect != nil {
		sse.OnReconnect(a.onReconnect)
	}
	a.mu.Unlock()

	if err := sse.Start(ctx, conversations, handler); err != nil {
		return a.startPolling(ctx, conversations, handler)
	}

	if len(conversations) == 0 {
		// No stream to probe yet; commit to SSE and let it connect once
		// conversations are added.
		a.mu.Lock()
		a.current = sse
		a.mu.Unlock()
		return nil
	}

	select {
	case <-sse.Connected():
		a.mu.Lock()
		a.current = sse
		a.mu.Unlock()
		return nil
	case <-time.After(a.cfg.SSEConnectionTimeout):
		sse.Stop()
		return a.startPolling(ctx, conversations, handler)
	case <-ctx.Done():
		sse.Stop()
		return ctx.Err()
	}
}

func (a *AutoStrategy) startPolling(ctx context.Context, conversations []ConversationInfo, handler EventHandler) error {
	polling := NewPollingStrategy(a.cfg)
	if err := polling.Start(ctx, conversations, handler); err != nil {
		return err
	}
	a.mu.Lock()
	a.current = polling
	a.mu.Unlock()
	return nil
}

// Stop gracefully shuts down the strategy.
func (a *AutoStrategy) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current != nil {
		return a.current.Stop()
	}
	return nil
}

// AddConversation adds a conversation to watch.
func (a *AutoStrategy) AddConversation(conv ConversationInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current != nil {
		return a.current.AddConversation(conv)
	}
	return nil
}

// RemoveConversation stops watching a conversation.
func (a *AutoStrategy) RemoveConversation(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current != nil {
		return a.current.RemoveConversation(id)
	}
	return nil
}

// OnReconnect sets the reconnection callback on the active strategy.
func (a *AutoStrategy) OnReconnect(fn func(ctx context.Context)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onReconnect = fn
	if a.current != nil {
		a.current.OnReconnect(fn)
	}
}
