package api

import (
	"context"
	"time"
)

// Balance represents the GET /api/billing/balance response.
type Balance struct {
	CreditsRemaining float64   `json:"credits_remaining"`
	SpendCap         *float64  `json:"spend_cap,omitempty"`
	SpendThisPeriod  float64   `json:"spend_this_period"`
	Currency         string    `json:"currency"`
	PlanID           string    `json:"plan_id"`
	PeriodEnd        time.Time `json:"period_end"`
}

// BillingUsage represents the GET /api/billing/usage response.
type BillingUsage struct {
	PeriodStart  time.Time          `json:"period_start"`
	PeriodEnd    time.Time          `json:"period_end"`
	CreditsSpent float64            `json:"credits_spent"`
	Breakdown    map[string]float64 `json:"breakdown,omitempty"`
}

// GetBalance retrieves the workspace's credit balance.
func (c *Client) GetBalance(ctx context.Context) (*Balance, error) {
	var result Balance
	if err := c.get(ctx, "/api/billing/balance", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetBillingUsage retrieves credit spend for the current billing period.
func (c *Client) GetBillingUsage(ctx context.Context) (*BillingUsage, error) {
	var result BillingUsage
	if err := c.get(ctx, "/api/billing/usage", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetSpendCap sets the per-period spend cap. A nil cap removes the limit.
func (c *Client) SetSpendCap(ctx context.Context, cap *float64) (*Balance, error) {
	body := struct {
		SpendCap *float64 `json:"spend_cap"`
	}{SpendCap: cap}

	var result Balance
	if err := c.patch(ctx, "/api/billing/spend-cap", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
