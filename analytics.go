package supp

import (
	"context"
	"time"

	"github.com/suppsupport/client-go/internal/api"
)

// AnalyticsQuery bounds an analytics request. Zero times leave the window
// open on that side; Granularity defaults to "day" on the server.
type AnalyticsQuery struct {
	From        time.Time
	To          time.Time
	Granularity string // "day", "week", or "month"
}

// Analytics provides access to workspace analytics.
type Analytics interface {
	// Overview returns aggregate conversation metrics for the window.
	Overview(ctx context.Context, query AnalyticsQuery) (*AnalyticsOverview, error)

	// Usage returns bucketed usage counts for the window.
	Usage(ctx context.Context, query AnalyticsQuery) ([]*UsagePoint, error)
}

// analyticsImpl implements the Analytics interface.
type analyticsImpl struct {
	client *Client
}

// Analytics returns the analytics API.
func (c *Client) Analytics() Analytics {
	return &analyticsImpl{client: c}
}

func (r *analyticsImpl) Overview(ctx context.Context, query AnalyticsQuery) (*AnalyticsOverview, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.GetAnalyticsOverview(ctx, api.AnalyticsParams{
		From:        query.From,
		To:          query.To,
		Granularity: query.Granularity,
	})
	if err != nil {
		return nil, err
	}

	return &AnalyticsOverview{
		TotalConversations:    dto.TotalConversations,
		OpenConversations:     dto.OpenConversations,
		ResolvedConversations: dto.ResolvedConversations,
		AvgFirstResponse:      secondsToDuration(dto.AvgFirstResponseSecs),
		AvgResolution:         secondsToDuration(dto.AvgResolutionSecs),
		DeflectionRate:        dto.DeflectionRate,
	}, nil
}

func (r *analyticsImpl) Usage(ctx context.Context, query AnalyticsQuery) ([]*UsagePoint, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := r.client.apiClient.GetUsage(ctx, api.AnalyticsParams{
		From:        query.From,
		To:          query.To,
		Granularity: query.Granularity,
	})
	if err != nil {
		return nil, err
	}

	points := make([]*UsagePoint, 0, len(dtos))
	for _, dto := range dtos {
		points = append(points, &UsagePoint{
			Date:            dto.Date,
			Conversations:   dto.Conversations,
			Classifications: dto.Classifications,
			CreditsSpent:    dto.CreditsSpent,
		})
	}
	return points, nil
}

func secondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
