package supp

import (
	"context"

	"github.com/suppsupport/client-go/internal/api"
)

// classifyConfig holds optional context for a classification request.
type classifyConfig struct {
	conversationID string
	channel        Channel
	language       string
}

// ClassifyOption adds optional context to a classification request.
type ClassifyOption func(*classifyConfig)

// WithConversation attributes the classification to a conversation, letting
// the model use prior messages as context.
func WithConversation(conversationID string) ClassifyOption {
	return func(c *classifyConfig) {
		c.conversationID = conversationID
	}
}

// WithChannel tells the model which channel the text came from.
func WithChannel(channel Channel) ClassifyOption {
	return func(c *classifyConfig) {
		c.channel = channel
	}
}

// WithLanguage pins the language instead of letting the model detect it.
// Use a BCP 47 tag such as "en" or "pt-BR".
func WithLanguage(language string) ClassifyOption {
	return func(c *classifyConfig) {
		c.language = language
	}
}

// Classify runs intent, sentiment and urgency classification on a customer
// message.
func (c *Client) Classify(ctx context.Context, text string, opts ...ClassifyOption) (*Classification, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &classifyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := api.ClassifyRequest{
		Text:           text,
		ConversationID: cfg.conversationID,
		Channel:        string(cfg.channel),
		Language:       cfg.language,
	}

	dto, err := c.apiClient.Classify(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Classification{
		Intent:            dto.Intent,
		Sentiment:         dto.Sentiment,
		Urgency:           dto.Urgency,
		Confidence:        dto.Confidence,
		SuggestedPriority: Priority(dto.SuggestedPriority),
		Language:          dto.Language,
	}, nil
}
