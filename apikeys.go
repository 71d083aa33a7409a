package supp

import (
	"context"
	"time"

	"github.com/suppsupport/client-go/internal/api"
)

// APIKeys provides access to API key management.
type APIKeys interface {
	// List returns the workspace's API keys. Secrets are never included;
	// only the prefix is available after creation.
	List(ctx context.Context) ([]*APIKey, error)

	// Create creates a new API key. The returned Key field holds the full
	// secret and cannot be retrieved again.
	Create(ctx context.Context, name string, opts ...APIKeyOption) (*CreatedAPIKey, error)

	// Revoke permanently revokes an API key.
	Revoke(ctx context.Context, id string) error
}

// apiKeysImpl implements the APIKeys interface.
type apiKeysImpl struct {
	client *Client
}

// APIKeys returns the API key management API.
func (c *Client) APIKeys() APIKeys {
	return &apiKeysImpl{client: c}
}

// apiKeyConfig holds optional fields for key creation.
type apiKeyConfig struct {
	expiresAt *time.Time
}

// APIKeyOption configures API key creation.
type APIKeyOption func(*apiKeyConfig)

// WithKeyExpiry sets when the key stops working. Keys without an expiry
// remain valid until revoked.
func WithKeyExpiry(expiresAt time.Time) APIKeyOption {
	return func(c *apiKeyConfig) {
		c.expiresAt = &expiresAt
	}
}

func (r *apiKeysImpl) List(ctx context.Context) ([]*APIKey, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := r.client.apiClient.ListAPIKeys(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]*APIKey, 0, len(dtos))
	for i := range dtos {
		keys = append(keys, apiKeyFromAPI(&dtos[i]))
	}
	return keys, nil
}

func (r *apiKeysImpl) Create(ctx context.Context, name string, opts ...APIKeyOption) (*CreatedAPIKey, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &apiKeyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := api.CreateAPIKeyRequest{
		Name:      name,
		ExpiresAt: cfg.expiresAt,
	}

	dto, err := r.client.apiClient.CreateAPIKey(ctx, req)
	if err != nil {
		return nil, err
	}

	return &CreatedAPIKey{
		APIKey: *apiKeyFromAPI(&dto.APIKey),
		Key:    dto.Key,
	}, nil
}

func (r *apiKeysImpl) Revoke(ctx context.Context, id string) error {
	if err := r.client.checkClosed(); err != nil {
		return err
	}
	return r.client.apiClient.RevokeAPIKey(ctx, id)
}

func apiKeyFromAPI(dto *api.APIKey) *APIKey {
	return &APIKey{
		ID:         dto.ID,
		Name:       dto.Name,
		Prefix:     dto.Prefix,
		CreatedAt:  dto.CreatedAt,
		LastUsedAt: dto.LastUsedAt,
		ExpiresAt:  dto.ExpiresAt,
		Revoked:    dto.Revoked,
	}
}
