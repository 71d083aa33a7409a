package delivery

import (
	"context"
	"time"

	"github.com/suppsupport/client-go/internal/api"
)

// ConversationInfo identifies a conversation to receive events for.
type ConversationInfo struct {
	// ID is the conversation identifier used by both the SSE endpoint and
	// the polling sync endpoint.
	ID string
}

// EventHandler is invoked for each conversation event. The handler receives
// the connection context and the raw event. Return an error to signal
// processing failure (currently errors are not propagated, but this may
// change).
type EventHandler func(ctx context.Context, event *api.Event) error

// Strategy defines the interface for conversation event delivery mechanisms.
// Implementations include PollingStrategy, SSEStrategy, and AutoStrategy.
//
// The typical lifecycle is:
//  1. Create a strategy with NewXxxStrategy(cfg)
//  2. Call Start(ctx, conversations, handler) to begin receiving events
//  3. Optionally call AddConversation/RemoveConversation
//  4. Call Stop() when done to release resources
//
// All implementations are safe for concurrent use.
type Strategy interface {
	// Start begins listening for events on the given conversations.
	// Start returns immediately; event delivery is asynchronous.
	Start(ctx context.Context, conversations []ConversationInfo, handler EventHandler) error

	// Stop gracefully shuts down the strategy and releases resources.
	// Stop is idempotent and safe to call multiple times.
	Stop() error

	// AddConversation adds a conversation to watch. Events begin flowing
	// according to the strategy's behavior (immediately for polling, on
	// the next reconnection for SSE).
	AddConversation(conv ConversationInfo) error

	// RemoveConversation stops watching a conversation.
	RemoveConversation(id string) error

	// Name returns the strategy name for logging and debugging.
	// Examples: "polling", "sse", "auto:sse", "auto:polling"
	Name() string

	// OnReconnect sets a callback invoked after each successful
	// connection/reconnection. For SSE this runs after the stream
	// connects; polling has no persistent connection so it is a no-op.
	// Used to sync events that may have arrived during a reconnection
	// window.
	OnReconnect(fn func(ctx context.Context))
}

// Config holds configuration shared by all delivery strategies.
type Config struct {
	// APIClient is the client used for server requests.
	APIClient *api.Client

	// PollingInitialInterval is the starting interval between polls.
	PollingInitialInterval time.Duration

	// PollingMaxBackoff is the maximum interval between polls.
	PollingMaxBackoff time.Duration

	// PollingBackoffMultiplier is the factor by which the interval grows
	// after each poll with no changes.
	PollingBackoffMultiplier float64

	// PollingJitterFactor is the maximum random jitter added to poll
	// intervals, as a fraction of the interval.
	PollingJitterFactor float64

	// SSEConnectionTimeout is the maximum time to wait for an SSE
	// connection before AutoStrategy falls back to polling.
	SSEConnectionTimeout time.Duration
}

// Default delivery configuration values.
const (
	DefaultPollingInitialInterval   = 2 * time.Second
	DefaultPollingMaxBackoff        = 30 * time.Second
	DefaultPollingBackoffMultiplier = 1.5
	DefaultPollingJitterFactor      = 0.3
	DefaultSSEConnectionTimeout     = 5 * time.Second
)

func (c Config) withDefaults() Config {
	if c.PollingInitialInterval <= 0 {
		c.PollingInitialInterval = DefaultPollingInitialInterval
	}
	if c.PollingMaxBackoff <= 0 {
		c.PollingMaxBackoff = DefaultPollingMaxBackoff
	}
	if c.PollingBackoffMultiplier <= 0 {
		c.PollingBackoffMultiplier = DefaultPollingBackoffMultiplier
	}
	if c.PollingJitterFactor <= 0 {
		c.PollingJitterFactor = DefaultPollingJitterFactor
	}
	if c.SSEConnectionTimeout <= 0 {
		c.SSEConnectionTimeout = DefaultSSEConnectionTimeout
	}
	return c
}
