package supp

import (
	"net/http"
	"time"
)

// DeliveryStrategy specifies how the client receives conversation events.
type DeliveryStrategy string

const (
	// StrategyAuto tries SSE first, falls back to polling.
	StrategyAuto DeliveryStrategy = "auto"
	// StrategySSE uses Server-Sent Events for real-time push notifications.
	StrategySSE DeliveryStrategy = "sse"
	// StrategyPolling uses periodic API calls with adaptive backoff.
	StrategyPolling DeliveryStrategy = "polling"
)

const defaultBaseURL = "https://api.supp.support"

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL          string
	httpClient       *http.Client
	deliveryStrategy DeliveryStrategy
	timeout          time.Duration
	retries          int // -1 means "use the dispatcher default"
	skipKeyCheck     bool
	onSyncError      func(error)

	// Polling configuration
	pollingInitialInterval   time.Duration
	pollingMaxBackoff        time.Duration
	pollingBackoffMultiplier float64
	pollingJitterFactor      float64
	sseConnectionTimeout     time.Duration
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL. A trailing slash is stripped.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP transport. Per-attempt timeouts are
// enforced through request contexts, so the client's own Timeout should
// normally remain zero.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithDeliveryStrategy sets how conversation events are delivered.
func WithDeliveryStrategy(strategy DeliveryStrategy) Option {
	return func(c *clientConfig) {
		c.deliveryStrategy = strategy
	}
}

// WithTimeout sets the per-attempt request timeout. Default: 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets how many additional attempts follow a transient failure
// (5xx, network error, timeout). Zero disables retries. Default: 2.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		if count >= 0 {
			c.retries = count
		}
	}
}

// WithSyncErrorHandler sets a callback for errors encountered while syncing
// watched conversations in the background after a reconnection.
func WithSyncErrorHandler(fn func(error)) Option {
	return func(c *clientConfig) {
		c.onSyncError = fn
	}
}

// WithoutKeyCheck skips the API key validation call during New. Useful when
// constructing many short-lived clients against a trusted configuration.
func WithoutKeyCheck() Option {
	return func(c *clientConfig) {
		c.skipKeyCheck = true
	}
}

// WithPollingInitialInterval sets the initial polling interval used while
// events are actively arriving. Default: 2 seconds.
func WithPollingInitialInterval(interval time.Duration) Option {
	return func(c *clientConfig) {
		c.pollingInitialInterval = interval
	}
}

// WithPollingMaxBackoff sets the maximum polling interval reached when no
// events arrive. Default: 30 seconds.
func WithPollingMaxBackoff(maxBackoff time.Duration) Option {
	return func(c *clientConfig) {
		c.pollingMaxBackoff = maxBackoff
	}
}

// WithPollingBackoffMultiplier sets the factor applied to the polling
// interval after each poll with no changes. Default: 1.5.
func WithPollingBackoffMultiplier(multiplier float64) Option {
	return func(c *clientConfig) {
		c.pollingBackoffMultiplier = multiplier
	}
}

// WithPollingJitterFactor sets the random jitter added to polling intervals
// as a fraction of the interval, preventing synchronized polling across
// clients. Default: 0.3.
func WithPollingJitterFactor(factor float64) Option {
	return func(c *clientConfig) {
		c.pollingJitterFactor = factor
	}
}

// WithSSEConnectionTimeout sets how long StrategyAuto waits for the SSE
// stream before falling back to polling. Default: 5 seconds.
func WithSSEConnectionTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.sseConnectionTimeout = timeout
	}
}
