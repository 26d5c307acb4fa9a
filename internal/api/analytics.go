package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"finboard/internal/core"
)

// Analytics endpoints. All aggregation happens server-side; these calls just
// fetch the precomputed payloads for the dashboard and reports views.

func (c *Client) DashboardSummary(ctx context.Context) (core.DashboardSummary, error) {
	var summary core.DashboardSummary
	if err := c.get(ctx, "/analytics/dashboard-summary", nil, &summary); err != nil {
		return core.DashboardSummary{}, fmt.Errorf("dashboard summary: %w", err)
	}
	return summary, nil
}

func (c *Client) ExpensesByCategory(ctx context.Context, start, end time.Time) ([]core.CategoryExpense, error) {
	query := url.Values{
		"startDate": {start.Format(dateParamLayout)},
		"endDate":   {end.Format(dateParamLayout)},
	}
	var expenses []core.CategoryExpense
	if err := c.get(ctx, "/analytics/expenses-by-category", query, &expenses); err != nil {
		return nil, fmt.Errorf("expenses by category: %w", err)
	}
	return expenses, nil
}

func (c *Client) CashFlow(ctx context.Context, year, month int) (core.CashFlow, error) {
	var flow core.CashFlow
	path := fmt.Sprintf("/analytics/cash-flow/%d/%d", year, month)
	if err := c.get(ctx, path, nil, &flow); err != nil {
		return core.CashFlow{}, fmt.Errorf("cash flow %d-%02d: %w", year, month, err)
	}
	return flow, nil
}

func (c *Client) MonthlySummary(ctx context.Context, startYear, startMonth, endYear, endMonth int) ([]core.MonthlySummary, error) {
	query := url.Values{
		"startYear":  {strconv.Itoa(startYear)},
		"startMonth": {strconv.Itoa(startMonth)},
		"endYear":    {strconv.Itoa(endYear)},
		"endMonth":   {strconv.Itoa(endMonth)},
	}
	var summaries []core.MonthlySummary
	if err := c.get(ctx, "/analytics/monthly-summary", query, &summaries); err != nil {
		return nil, fmt.Errorf("monthly summary: %w", err)
	}
	return summaries, nil
}

func (c *Client) AccountBalanceHistory(ctx context.Context, accountID int64, start, end time.Time) ([]core.BalancePoint, error) {
	query := url.Values{
		"startDate": {start.Format(dateParamLayout)},
		"endDate":   {end.Format(dateParamLayout)},
	}
	var points []core.BalancePoint
	path := fmt.Sprintf("/analytics/account-balance-history/%d", accountID)
	if err := c.get(ctx, path, query, &points); err != nil {
		return nil, fmt.Errorf("balance history for account %d: %w", accountID, err)
	}
	return points, nil
}
