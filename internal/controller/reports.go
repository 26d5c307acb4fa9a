package controller

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"finboard/internal/cache"
	"finboard/internal/core"
	"finboard/internal/log"
)

const reportCacheSize = 32

// Reports serves the dashboard summary and the reports page. Analytics
// queries are expensive server-side and their inputs repeat as the user
// flips between tabs, so each query kind gets a small TTL cache keyed by
// its parameters.
type Reports struct {
	api    AnalyticsAPI
	logger *log.Logger

	summary  *cache.LRU[core.DashboardSummary]
	expenses *cache.LRU[[]core.CategoryExpense]
	cashflow *cache.LRU[core.CashFlow]
	monthly  *cache.LRU[[]core.MonthlySummary]
	history  *cache.LRU[[]core.BalancePoint]
}

func NewReports(a AnalyticsAPI, ttl time.Duration, logger *log.Logger) *Reports {
	return &Reports{
		api:      a,
		logger:   logger.WithComponent(log.ComponentReports),
		summary:  cache.NewLRU[core.DashboardSummary](1, ttl),
		expenses: cache.NewLRU[[]core.CategoryExpense](reportCacheSize, ttl),
		cashflow: cache.NewLRU[core.CashFlow](reportCacheSize, ttl),
		monthly:  cache.NewLRU[[]core.MonthlySummary](reportCacheSize, ttl),
		history:  cache.NewLRU[[]core.BalancePoint](reportCacheSize, ttl),
	}
}

// Caches exposes the report caches for periodic cleanup.
func (c *Reports) Caches() []cache.Cleaner {
	return []cache.Cleaner{c.summary, c.expenses, c.cashflow, c.monthly, c.history}
}

// Invalidate drops every cached report. Registered as the mutation hook of
// the account, transaction, budget, and goal controllers, and called on
// sign-out; any write changes the server aggregates.
func (c *Reports) Invalidate() {
	c.summary.Purge()
	c.expenses.Purge()
	c.cashflow.Purge()
	c.monthly.Purge()
	c.history.Purge()
}

// Summary returns the dashboard headline figures.
func (c *Reports) Summary(ctx context.Context) (core.DashboardSummary, error) {
	if v, ok := c.summary.Get("summary"); ok {
		return v, nil
	}
	summary, err := c.api.DashboardSummary(ctx)
	if err != nil {
		c.logger.Error("load dashboard summary", log.FieldOperation, log.OpLoad, log.FieldError, err)
		return core.DashboardSummary{}, err
	}
	c.summary.Set("summary", summary)
	return summary, nil
}

// ExpensesByCategory returns the category breakdown over a window.
func (c *Reports) ExpensesByCategory(ctx context.Context, start, end time.Time) ([]core.CategoryExpense, error) {
	key := rangeKey(start, end)
	if v, ok := c.expenses.Get(key); ok {
		return v, nil
	}
	expenses, err := c.api.ExpensesByCategory(ctx, start, end)
	if err != nil {
		c.logger.Error("load expenses by category", log.FieldOperation, log.OpLoad, log.FieldError, err)
		return nil, err
	}
	c.expenses.Set(key, expenses)
	return expenses, nil
}

// CashFlow returns one month's income versus expenses.
func (c *Reports) CashFlow(ctx context.Context, year, month int) (core.CashFlow, error) {
	key := fmt.Sprintf("%04d-%02d", year, month)
	if v, ok := c.cashflow.Get(key); ok {
		return v, nil
	}
	flow, err := c.api.CashFlow(ctx, year, month)
	if err != nil {
		c.logger.Error("load cash flow", log.FieldOperation, log.OpLoad, log.FieldPeriod, key, log.FieldError, err)
		return core.CashFlow{}, err
	}
	c.cashflow.Set(key, flow)
	return flow, nil
}

// MonthlySummary returns per-month totals across a span of months.
func (c *Reports) MonthlySummary(ctx context.Context, startYear, startMonth, endYear, endMonth int) ([]core.MonthlySummary, error) {
	key := fmt.Sprintf("%04d-%02d:%04d-%02d", startYear, startMonth, endYear, endMonth)
	if v, ok := c.monthly.Get(key); ok {
		return v, nil
	}
	months, err := c.api.MonthlySummary(ctx, startYear, startMonth, endYear, endMonth)
	if err != nil {
		c.logger.Error("load monthly summary", log.FieldOperation, log.OpLoad, log.FieldError, err)
		return nil, err
	}
	c.monthly.Set(key, months)
	return months, nil
}

// BalanceHistory returns an account's balance curve over a window.
func (c *Reports) BalanceHistory(ctx context.Context, accountID int64, start, end time.Time) ([]core.BalancePoint, error) {
	key := fmt.Sprintf("%d:%s", accountID, rangeKey(start, end))
	if v, ok := c.history.Get(key); ok {
		return v, nil
	}
	points, err := c.api.AccountBalanceHistory(ctx, accountID, start, end)
	if err != nil {
		c.logger.Error("load balance history", log.FieldOperation, log.OpLoad, log.FieldEntityID, accountID, log.FieldError, err)
		return nil, err
	}
	c.history.Set(key, points)
	return points, nil
}

// Overview is what the reports page renders: the three tabs loaded
// together for the selected window.
type Overview struct {
	ByCategory []core.CategoryExpense
	CashFlow   core.CashFlow
	Monthly    []core.MonthlySummary
}

// LoadOverview fetches all three report tabs concurrently. The cash-flow
// month is the end of the window; the monthly trend spans the window's
// months.
func (c *Reports) LoadOverview(ctx context.Context, start, end time.Time) (Overview, error) {
	var overview Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		expenses, err := c.ExpensesByCategory(ctx, start, end)
		if err != nil {
			return err
		}
		overview.ByCategory = expenses
		return nil
	})
	g.Go(func() error {
		flow, err := c.CashFlow(ctx, end.Year(), int(end.Month()))
		if err != nil {
			return err
		}
		overview.CashFlow = flow
		return nil
	})
	g.Go(func() error {
		months, err := c.MonthlySummary(ctx, start.Year(), int(start.Month()), end.Year(), int(end.Month()))
		if err != nil {
			return err
		}
		overview.Monthly = months
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return overview, nil
}

func rangeKey(start, end time.Time) string {
	return start.Format("2006-01-02") + ":" + end.Format("2006-01-02")
}
