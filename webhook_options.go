package supp

// webhookCreateConfig holds configuration for creating a webhook.
type webhookCreateConfig struct {
	events []string
	active *bool
}

// webhookUpdateConfig holds configuration for updating a webhook.
type webhookUpdateConfig struct {
	url    *string
	events *[]string
	active *bool
}

// WebhookCreateOption configures webhook creation.
type WebhookCreateOption func(*webhookCreateConfig)

// WebhookUpdateOption configures webhook updates.
type WebhookUpdateOption func(*webhookUpdateConfig)

// Create options

// WithWebhookEvents sets the event types that trigger the webhook.
// With no events set, the webhook receives all event types.
func WithWebhookEvents(events ...string) WebhookCreateOption {
	return func(c *webhookCreateConfig) {
		c.events = events
	}
}

// WithWebhookInactive creates the webhook in a paused state. No deliveries
// are made until it is activated with WithUpdateActive.
func WithWebhookInactive() WebhookCreateOption {
	return func(c *webhookCreateConfig) {
		active := false
		c.active = &active
	}
}

// Update options

// WithUpdateURL updates the webhook URL.
func WithUpdateURL(url string) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.url = &url
	}
}

// WithUpdateEvents updates the event types that trigger the webhook.
func WithUpdateEvents(events ...string) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.events = &events
	}
}

// WithUpdateActive pauses or resumes webhook deliveries.
func WithUpdateActive(active bool) WebhookUpdateOption {
	return func(c *webhookUpdateConfig) {
		c.active = &active
	}
}
