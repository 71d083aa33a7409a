package supp

import (
	"context"

	"github.com/suppsupport/client-go/internal/api"
)

// Billing provides access to the workspace's credit balance and spend.
type Billing interface {
	// Balance returns the current credit balance.
	Balance(ctx context.Context) (*Balance, error)

	// Usage returns credit spend for the current billing period.
	Usage(ctx context.Context) (*BillingUsage, error)

	// SetSpendCap sets the per-period spend cap. A nil cap removes the
	// limit. Requests beyond the cap fail with ErrRateLimited.
	SetSpendCap(ctx context.Context, cap *float64) (*Balance, error)
}

// billingImpl implements the Billing interface.
type billingImpl struct {
	client *Client
}

// Billing returns the billing API.
func (c *Client) Billing() Billing {
	return &billingImpl{client: c}
}

func (r *billingImpl) Balance(ctx context.Context) (*Balance, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.GetBalance(ctx)
	if err != nil {
		return nil, err
	}
	return balanceFromAPI(dto), nil
}

func (r *billingImpl) Usage(ctx context.Context) (*BillingUsage, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.GetBillingUsage(ctx)
	if err != nil {
		return nil, err
	}

	return &BillingUsage{
		PeriodStart:  dto.PeriodStart,
		PeriodEnd:    dto.PeriodEnd,
		CreditsSpent: dto.CreditsSpent,
		Breakdown:    dto.Breakdown,
	}, nil
}

func (r *billingImpl) SetSpendCap(ctx context.Context, cap *float64) (*Balance, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.SetSpendCap(ctx, cap)
	if err != nil {
		return nil, err
	}
	return balanceFromAPI(dto), nil
}

func balanceFromAPI(dto *api.Balance) *Balance {
	var spendCap *float64
	if dto.SpendCap != nil {
		v := *dto.SpendCap
		spendCap = &v
	}
	return &Balance{
		CreditsRemaining: dto.CreditsRemaining,
		SpendCap:         spendCap,
		SpendThisPeriod:  dto.SpendThisPeriod,
		Currency:         dto.Currency,
		PlanID:           dto.PlanID,
		PeriodEnd:        dto.PeriodEnd,
	}
}
