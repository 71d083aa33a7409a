package supp

import (
	"context"

	"github.com/suppsupport/client-go/internal/api"
)

// Integrations provides access to third-party integration management.
type Integrations interface {
	// List returns all integrations connected to the workspace.
	List(ctx context.Context) ([]*Integration, error)

	// Connect connects a provider such as "slack" or "zendesk". Settings
	// are provider-specific.
	Connect(ctx context.Context, provider string, settings map[string]string) (*Integration, error)

	// Get returns an integration by ID.
	Get(ctx context.Context, id string) (*Integration, error)

	// Disconnect disconnects and removes an integration.
	Disconnect(ctx context.Context, id string) error
}

// integrationsImpl implements the Integrations interface.
type integrationsImpl struct {
	client *Client
}

// Integrations returns the integration API.
func (c *Client) Integrations() Integrations {
	return &integrationsImpl{client: c}
}

func (r *integrationsImpl) List(ctx context.Context) ([]*Integration, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := r.client.apiClient.ListIntegrations(ctx)
	if err != nil {
		return nil, err
	}

	integrations := make([]*Integration, 0, len(dtos))
	for i := range dtos {
		integrations = append(integrations, integrationFromAPI(&dtos[i]))
	}
	return integrations, nil
}

func (r *integrationsImpl) Connect(ctx context.Context, provider string, settings map[string]string) (*Integration, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	req := api.ConnectIntegrationRequest{
		Provider: provider,
		Settings: settings,
	}

	dto, err := r.client.apiClient.ConnectIntegration(ctx, req)
	if err != nil {
		return nil, err
	}
	return integrationFromAPI(dto), nil
}

func (r *integrationsImpl) Get(ctx context.Context, id string) (*Integration, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.GetIntegration(ctx, id)
	if err != nil {
		return nil, err
	}
	return integrationFromAPI(dto), nil
}

func (r *integrationsImpl) Disconnect(ctx context.Context, id string) error {
	if err := r.client.checkClosed(); err != nil {
		return err
	}
	return r.client.apiClient.DisconnectIntegration(ctx, id)
}

func integrationFromAPI(dto *api.Integration) *Integration {
	return &Integration{
		ID:          dto.ID,
		Provider:    dto.Provider,
		Status:      dto.Status,
		Settings:    dto.Settings,
		ConnectedAt: dto.ConnectedAt,
	}
}
