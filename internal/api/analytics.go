package api

import (
	"context"
	"net/url"
	"time"
)

// AnalyticsOverview represents the GET /api/analytics/overview response.
type AnalyticsOverview struct {
	TotalConversations    int     `json:"total_conversations"`
	OpenConversations     int     `json:"open_conversations"`
	ResolvedConversations int     `json:"resolved_conversations"`
	AvgFirstResponseSecs  float64 `json:"avg_first_response_secs"`
	AvgResolutionSecs     float64 `json:"avg_resolution_secs"`
	DeflectionRate        float64 `json:"deflection_rate"`
}

// UsagePoint is one bucket of the GET /api/analytics/usage response.
type UsagePoint struct {
	Date            string  `json:"date"`
	Conversations   int     `json:"conversations"`
	Classifications int     `json:"classifications"`
	CreditsSpent    float64 `json:"credits_spent"`
}

// AnalyticsParams bounds an analytics query. Zero times are omitted from
// the query string.
type AnalyticsParams struct {
	From        time.Time
	To          time.Time
	Granularity string // "day", "week", or "month"
}

func (p AnalyticsParams) query() url.Values {
	query := url.Values{}
	if !p.From.IsZero() {
		query.Set("from", p.From.Format(time.RFC3339))
	}
	if !p.To.IsZero() {
		query.Set("to", p.To.Format(time.RFC3339))
	}
	if p.Granularity != "" {
		query.Set("granularity", p.Granularity)
	}
	return query
}

// GetAnalyticsOverview retrieves aggregate conversation metrics.
func (c *Client) GetAnalyticsOverview(ctx context.Context, params AnalyticsParams) (*AnalyticsOverview, error) {
	var result AnalyticsOverview
	if err := c.get(ctx, "/api/analytics/overview", params.query(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUsage retrieves bucketed usage counts.
func (c *Client) GetUsage(ctx context.Context, params AnalyticsParams) ([]UsagePoint, error) {
	var result []UsagePoint
	if err := c.get(ctx, "/api/analytics/usage", params.query(), &result); err != nil {
		return nil, err
	}
	return result, nil
}
