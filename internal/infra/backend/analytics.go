package backend

import (
	"context"
	"fmt"

	"example.com/brewery-admin/internal/domain/analytics"
)

const analyticsPath = "/api/analytics"

type analyticsParams struct {
	MaterialID int64  `url:"materialId,omitempty"`
	ProductID  int64  `url:"productId,omitempty"`
	StartDate  string `url:"startDate,omitempty"`
	EndDate    string `url:"endDate,omitempty"`
}

type AnalyticsRepository struct {
	client *Client
}

func NewAnalyticsRepository(c *Client) *AnalyticsRepository {
	return &AnalyticsRepository{client: c}
}

var _ analytics.Repository = (*AnalyticsRepository)(nil)

func (r *AnalyticsRepository) Series(ctx context.Context, report analytics.Report, q analytics.Query) ([]analytics.Point, error) {
	if !report.IsValid() {
		return nil, fmt.Errorf("%w: %q", analytics.ErrUnknownReport, report)
	}
	params := analyticsParams(q)
	out, err := Get[[]analytics.Point](ctx, r.client, analyticsPath+"/"+string(report), params)
	if err != nil || out == nil {
		return []analytics.Point{}, err
	}
	return *out, nil
}
