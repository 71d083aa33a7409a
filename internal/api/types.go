package api

import "time"

// Workspace represents the GET /api/workspace response.
type Workspace struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Plan            string    `json:"plan"`
	AllowedChannels []string  `json:"allowed_channels"`
	MaxRoutingRules int       `json:"max_routing_rules"`
	CreatedAt       time.Time `json:"created_at"`
}

// RuleCondition is one predicate of a routing or priority rule.
type RuleCondition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}
