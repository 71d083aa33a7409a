package supp

import (
	"context"

	"github.com/suppsupport/client-go/internal/api"
)

// Routing provides access to routing decisions and routing rule management.
type Routing interface {
	// Decide asks the server which team or agent should handle the
	// conversation. The decision is advisory; call Conversations().Assign
	// to act on it.
	Decide(ctx context.Context, conversationID string) (*RoutingDecision, error)

	// ListRules returns all routing rules ordered by position.
	ListRules(ctx context.Context) ([]*RoutingRule, error)

	// CreateRule creates a routing rule matching the given conditions.
	CreateRule(ctx context.Context, name string, conditions []RuleCondition, opts ...RuleCreateOption) (*RoutingRule, error)

	// GetRule returns a routing rule by ID.
	GetRule(ctx context.Context, id string) (*RoutingRule, error)

	// UpdateRule applies a partial update to a routing rule.
	UpdateRule(ctx context.Context, id string, opts ...RuleUpdateOption) (*RoutingRule, error)

	// DeleteRule deletes a routing rule.
	DeleteRule(ctx context.Context, id string) error
}

// routingImpl implements the Routing interface.
type routingImpl struct {
	client *Client
}

// Routing returns the routing API.
func (c *Client) Routing() Routing {
	return &routingImpl{client: c}
}

// ruleCreateConfig holds optional fields for rule creation.
type ruleCreateConfig struct {
	teamID     string
	assigneeID string
	position   int
	enabled    *bool
}

// RuleCreateOption configures routing and priority rule creation.
type RuleCreateOption func(*ruleCreateConfig)

// WithRuleTeam sets the team conversations are routed to.
func WithRuleTeam(teamID string) RuleCreateOption {
	return func(c *ruleCreateConfig) {
		c.teamID = teamID
	}
}

// WithRuleAssignee sets the agent conversations are routed to.
func WithRuleAssignee(assigneeID string) RuleCreateOption {
	return func(c *ruleCreateConfig) {
		c.assigneeID = assigneeID
	}
}

// WithRulePosition sets the rule's position in the evaluation order.
// Lower positions are evaluated first.
func WithRulePosition(position int) RuleCreateOption {
	return func(c *ruleCreateConfig) {
		c.position = position
	}
}

// WithRuleDisabled creates the rule in a disabled state.
func WithRuleDisabled() RuleCreateOption {
	return func(c *ruleCreateConfig) {
		enabled := false
		c.enabled = &enabled
	}
}

// ruleUpdateConfig holds the fields touched by a rule update.
type ruleUpdateConfig struct {
	name       *string
	enabled    *bool
	conditions *[]RuleCondition
	teamID     *string
	assigneeID *string
	priority   *Priority
	position   *int
}

// RuleUpdateOption configures routing and priority rule updates.
type RuleUpdateOption func(*ruleUpdateConfig)

// WithUpdateRuleName renames the rule.
func WithUpdateRuleName(name string) RuleUpdateOption {
	return func(c *ruleUpdateConfig) {
		c.name = &name
	}
}

// WithUpdateRuleEnabled enables or disables the rule.
func WithUpdateRuleEnabled(enabled bool) RuleUpdateOption {
	return func(c *ruleUpdateConfig) {
		c.enabled = &enabled
	}
}

// WithUpdateRuleConditions replaces the rule's conditions.
func WithUpdateRuleConditions(conditions ...RuleCondition) RuleUpdateOption {
	return func(c *ruleUpdateConfig) {
		c.conditions = &conditions
	}
}

// WithUpdateRuleTeam changes the target team.
func WithUpdateRuleTeam(teamID string) RuleUpdateOption {
	return func(c *ruleUpdateConfig) {
		c.teamID = &teamID
	}
}

// WithUpdateRuleAssignee changes the target agent.
func WithUpdateRuleAssignee(assigneeID string) RuleUpdateOption {
	return func(c *ruleUpdateConfig) {
		c.assigneeID = &assigneeID
	}
}

// WithUpdateRulePosition moves the rule in the evaluation order.
func WithUpdateRulePosition(position int) RuleUpdateOption {
	return func(c *ruleUpdateConfig) {
		c.position = &position
	}
}

// WithUpdateRulePriority changes the priority a priority rule applies.
// It has no effect on routing rules.
func WithUpdateRulePriority(priority Priority) RuleUpdateOption {
	return func(c *ruleUpdateConfig) {
		c.priority = &priority
	}
}

func (r *routingImpl) Decide(ctx context.Context, conversationID string) (*RoutingDecision, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.DecideRoute(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	return &RoutingDecision{
		ConversationID: dto.ConversationID,
		TeamID:         dto.TeamID,
		AssigneeID:     dto.AssigneeID,
		RuleID:         dto.RuleID,
		Reason:         dto.Reason,
		Confidence:     dto.Confidence,
	}, nil
}

func (r *routingImpl) ListRules(ctx context.Context) ([]*RoutingRule, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := r.client.apiClient.ListRoutingRules(ctx)
	if err != nil {
		return nil, err
	}

	rules := make([]*RoutingRule, 0, len(dtos))
	for i := range dtos {
		rules = append(rules, routingRuleFromAPI(&dtos[i]))
	}
	return rules, nil
}

func (r *routingImpl) CreateRule(ctx context.Context, name string, conditions []RuleCondition, opts ...RuleCreateOption) (*RoutingRule, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &ruleCreateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := api.CreateRoutingRuleRequest{
		Name:       name,
		Conditions: ruleConditionsToAPI(conditions),
		TeamID:     cfg.teamID,
		AssigneeID: cfg.assigneeID,
		Position:   cfg.position,
		Enabled:    cfg.enabled,
	}

	dto, err := r.client.apiClient.CreateRoutingRule(ctx, req)
	if err != nil {
		return nil, err
	}
	return routingRuleFromAPI(dto), nil
}

func (r *routingImpl) GetRule(ctx context.Context, id string) (*RoutingRule, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.GetRoutingRule(ctx, id)
	if err != nil {
		return nil, err
	}
	return routingRuleFromAPI(dto), nil
}

func (r *routingImpl) UpdateRule(ctx context.Context, id string, opts ...RuleUpdateOption) (*RoutingRule, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &ruleUpdateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := api.UpdateRoutingRuleRequest{
		Name:       cfg.name,
		Enabled:    cfg.enabled,
		TeamID:     cfg.teamID,
		AssigneeID: cfg.assigneeID,
		Position:   cfg.position,
	}
	if cfg.conditions != nil {
		conds := ruleConditionsToAPI(*cfg.conditions)
		req.Conditions = &conds
	}

	dto, err := r.client.apiClient.UpdateRoutingRule(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return routingRuleFromAPI(dto), nil
}

func (r *routingImpl) DeleteRule(ctx context.Context, id string) error {
	if err := r.client.checkClosed(); err != nil {
		return err
	}
	return r.client.apiClient.DeleteRoutingRule(ctx, id)
}

func routingRuleFromAPI(dto *api.RoutingRule) *RoutingRule {
	return &RoutingRule{
		ID:         dto.ID,
		Name:       dto.Name,
		Enabled:    dto.Enabled,
		Conditions: ruleConditionsFromAPI(dto.Conditions),
		TeamID:     dto.TeamID,
		AssigneeID: dto.AssigneeID,
		Position:   dto.Position,
		CreatedAt:  dto.CreatedAt,
		UpdatedAt:  dto.UpdatedAt,
	}
}

func ruleConditionsToAPI(conditions []RuleCondition) []api.RuleCondition {
	out := make([]api.RuleCondition, 0, len(conditions))
	for _, c := range conditions {
		out = append(out, api.RuleCondition{
			Field:    c.Field,
			Operator: c.Operator,
			Value:    c.Value,
		})
	}
	return out
}

func ruleConditionsFromAPI(conditions []api.RuleCondition) []RuleCondition {
	out := make([]RuleCondition, 0, len(conditions))
	for _, c := range conditions {
		out = append(out, RuleCondition{
			Field:    c.Field,
			Operator: c.Operator,
			Value:    c.Value,
		})
	}
	return out
}
