package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/milesync/mscoach/internal/models"
)

// GetAnalytics returns the cross-goal progress summary.
func (c *Client) GetAnalytics(ctx context.Context) (models.AnalyticsSummary, error) {
	var out models.AnalyticsSummary
	err := c.get(ctx, "/api/analytics/summary", nil, &out)
	return out, err
}

// GetInsights returns coaching insights for one goal.
func (c *Client) GetInsights(ctx context.Context, goalID int64) ([]models.Insight, error) {
	var out []models.Insight
	query := url.Values{"goal_id": {strconv.FormatInt(goalID, 10)}}
	err := c.get(ctx, "/api/analytics/insights", query, &out)
	return out, err
}

// GetResources returns suggested resources for one goal.
func (c *Client) GetResources(ctx context.Context, goalID int64) ([]models.Resource, error) {
	var out []models.Resource
	query := url.Values{"goal_id": {strconv.FormatInt(goalID, 10)}}
	err := c.get(ctx, "/api/analytics/resources", query, &out)
	return out, err
}
