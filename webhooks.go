package supp

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/suppsupport/client-go/internal/api"
)

// SignatureHeader is the HTTP header carrying the webhook payload signature.
const SignatureHeader = "X-Supp-Signature"

// Webhook event type constants accepted by WithWebhookEvents.
const (
	WebhookEventMessageCreated      = "message.created"
	WebhookEventConversationUpdated = "conversation.updated"
	WebhookEventApprovalRequested   = "approval.requested"
)

// Webhooks provides access to webhook endpoint management.
type Webhooks interface {
	// Create registers a webhook endpoint. The returned Secret is the
	// signing secret; it is not retrievable later.
	Create(ctx context.Context, url string, opts ...WebhookCreateOption) (*Webhook, error)

	// List returns all registered webhooks.
	List(ctx context.Context) ([]*Webhook, error)

	// Get returns a webhook by ID.
	Get(ctx context.Context, id string) (*Webhook, error)

	// Update applies a partial update to a webhook.
	Update(ctx context.Context, id string, opts ...WebhookUpdateOption) (*Webhook, error)

	// Delete removes a webhook.
	Delete(ctx context.Context, id string) error

	// Test asks the server to send a test delivery to the webhook.
	Test(ctx context.Context, id string) (*WebhookTestResult, error)

	// RotateSecret rotates the webhook's signing secret. The previous
	// secret remains valid until the returned PreviousValidUntil.
	RotateSecret(ctx context.Context, id string) (*WebhookSecretRotation, error)
}

// webhooksImpl implements the Webhooks interface.
type webhooksImpl struct {
	client *Client
}

// Webhooks returns the webhook API.
func (c *Client) Webhooks() Webhooks {
	return &webhooksImpl{client: c}
}

func (r *webhooksImpl) Create(ctx context.Context, url string, opts ...WebhookCreateOption) (*Webhook, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &webhookCreateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := api.CreateWebhookRequest{
		URL:    url,
		Events: cfg.events,
		Active: cfg.active,
	}

	dto, err := r.client.apiClient.CreateWebhook(ctx, req)
	if err != nil {
		return nil, err
	}
	return webhookFromAPI(dto), nil
}

func (r *webhooksImpl) List(ctx context.Context) ([]*Webhook, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := r.client.apiClient.ListWebhooks(ctx)
	if err != nil {
		return nil, err
	}

	webhooks := make([]*Webhook, 0, len(dtos))
	for i := range dtos {
		webhooks = append(webhooks, webhookFromAPI(&dtos[i]))
	}
	return webhooks, nil
}

func (r *webhooksImpl) Get(ctx context.Context, id string) (*Webhook, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.GetWebhook(ctx, id)
	if err != nil {
		return nil, err
	}
	return webhookFromAPI(dto), nil
}

func (r *webhooksImpl) Update(ctx context.Context, id string, opts ...WebhookUpdateOption) (*Webhook, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &webhookUpdateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := api.UpdateWebhookRequest{
		URL:    cfg.url,
		Events: cfg.events,
		Active: cfg.active,
	}

	dto, err := r.client.apiClient.UpdateWebhook(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return webhookFromAPI(dto), nil
}

func (r *webhooksImpl) Delete(ctx context.Context, id string) error {
	if err := r.client.checkClosed(); err != nil {
		return err
	}
	return r.client.apiClient.DeleteWebhook(ctx, id)
}

func (r *webhooksImpl) Test(ctx context.Context, id string) (*WebhookTestResult, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.TestWebhook(ctx, id)
	if err != nil {
		return nil, err
	}

	return &WebhookTestResult{
		Success:    dto.Success,
		StatusCode: dto.StatusCode,
		Error:      dto.Error,
	}, nil
}

func (r *webhooksImpl) RotateSecret(ctx context.Context, id string) (*WebhookSecretRotation, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.RotateWebhookSecret(ctx, id)
	if err != nil {
		return nil, err
	}

	return &WebhookSecretRotation{
		Secret:             dto.Secret,
		PreviousValidUntil: dto.PreviousValidUntil,
	}, nil
}

func webhookFromAPI(dto *api.Webhook) *Webhook {
	return &Webhook{
		ID:        dto.ID,
		URL:       dto.URL,
		Events:    dto.Events,
		Active:    dto.Active,
		Secret:    dto.Secret,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}
}

// VerifySignature checks a webhook delivery against its signing secret.
// The signature is the lowercase hex HMAC-SHA256 of the raw request body,
// as sent in the SignatureHeader header. Comparison is constant-time.
// Returns ErrInvalidSignature on mismatch.
func VerifySignature(secret string, body []byte, signature string) error {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
