package api

import (
	"context"

	"github.com/milesync/mscoach/internal/models"
)

// GetQuota returns the account's token budget state.
func (c *Client) GetQuota(ctx context.Context) (models.Quota, error) {
	var out models.Quota
	err := c.get(ctx, "/api/dashboard/quota", nil, &out)
	return out, err
}

// GetDashboard returns the landing-view aggregate.
func (c *Client) GetDashboard(ctx context.Context) (models.DashboardSummary, error) {
	var out models.DashboardSummary
	err := c.get(ctx, "/api/dashboard/summary", nil, &out)
	return out, err
}
