package supp

import (
	"context"

	"github.com/suppsupport/client-go/internal/api"
)

// PriorityRules provides access to priority rule management. Priority rules
// set the priority of incoming conversations matching their conditions; the
// first matching rule by position wins.
type PriorityRules interface {
	// List returns all priority rules ordered by position.
	List(ctx context.Context) ([]*PriorityRule, error)

	// Create creates a priority rule applying the given priority to
	// conversations matching the conditions.
	Create(ctx context.Context, name string, priority Priority, conditions []RuleCondition, opts ...RuleCreateOption) (*PriorityRule, error)

	// Get returns a priority rule by ID.
	Get(ctx context.Context, id string) (*PriorityRule, error)

	// Update applies a partial update to a priority rule.
	Update(ctx context.Context, id string, opts ...RuleUpdateOption) (*PriorityRule, error)

	// Delete deletes a priority rule.
	Delete(ctx context.Context, id string) error
}

// priorityRulesImpl implements the PriorityRules interface.
type priorityRulesImpl struct {
	client *Client
}

// PriorityRules returns the priority rule API.
func (c *Client) PriorityRules() PriorityRules {
	return &priorityRulesImpl{client: c}
}

func (r *priorityRulesImpl) List(ctx context.Context) ([]*PriorityRule, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := r.client.apiClient.ListPriorityRules(ctx)
	if err != nil {
		return nil, err
	}

	rules := make([]*PriorityRule, 0, len(dtos))
	for i := range dtos {
		rules = append(rules, priorityRuleFromAPI(&dtos[i]))
	}
	return rules, nil
}

func (r *priorityRulesImpl) Create(ctx context.Context, name string, priority Priority, conditions []RuleCondition, opts ...RuleCreateOption) (*PriorityRule, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &ruleCreateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := api.CreatePriorityRuleRequest{
		Name:       name,
		Priority:   string(priority),
		Conditions: ruleConditionsToAPI(conditions),
		Position:   cfg.position,
		Enabled:    cfg.enabled,
	}

	dto, err := r.client.apiClient.CreatePriorityRule(ctx, req)
	if err != nil {
		return nil, err
	}
	return priorityRuleFromAPI(dto), nil
}

func (r *priorityRulesImpl) Get(ctx context.Context, id string) (*PriorityRule, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.GetPriorityRule(ctx, id)
	if err != nil {
		return nil, err
	}
	return priorityRuleFromAPI(dto), nil
}

func (r *priorityRulesImpl) Update(ctx context.Context, id string, opts ...RuleUpdateOption) (*PriorityRule, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &ruleUpdateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := api.UpdatePriorityRuleRequest{
		Name:     cfg.name,
		Enabled:  cfg.enabled,
		Position: cfg.position,
	}
	if cfg.priority != nil {
		p := string(*cfg.priority)
		req.Priority = &p
	}
	if cfg.conditions != nil {
		conds := ruleConditionsToAPI(*cfg.conditions)
		req.Conditions = &conds
	}

	dto, err := r.client.apiClient.UpdatePriorityRule(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return priorityRuleFromAPI(dto), nil
}

func (r *priorityRulesImpl) Delete(ctx context.Context, id string) error {
	if err := r.client.checkClosed(); err != nil {
		return err
	}
	return r.client.apiClient.DeletePriorityRule(ctx, id)
}

func priorityRuleFromAPI(dto *api.PriorityRule) *PriorityRule {
	return &PriorityRule{
		ID:         dto.ID,
		Name:       dto.Name,
		Enabled:    dto.Enabled,
		Priority:   Priority(dto.Priority),
		Conditions: ruleConditionsFromAPI(dto.Conditions),
		Position:   dto.Position,
		CreatedAt:  dto.CreatedAt,
		UpdatedAt:  dto.UpdatedAt,
	}
}
