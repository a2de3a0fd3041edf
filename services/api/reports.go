package apisvc

import (
	"context"
	"net/url"

	"github.com/Sky-walkerX/Examcell/core/report"
)

var _ report.Repository = (*Client)(nil)

func (c *Client) GetAdminAnalytics(ctx context.Context) (report.AnalyticsStats, error) {
	var stats report.AnalyticsStats
	err := c.get(ctx, "/analytics/admin", &stats)
	return stats, err
}

// GetSemesterReportHTML returns the server-rendered report of a semester as is.
func (c *Client) GetSemesterReportHTML(ctx context.Context, semester string) (string, error) {
	return c.FetchHTML(ctx, "/reports/semester/"+url.PathEscape(semester))
}
