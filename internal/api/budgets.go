package api

import (
	"context"
	"fmt"

	"finboard/internal/core"
)

// BudgetRequest is the create/update payload for budgets. SpentAmount and
// SpentPercentage are server-derived and never sent.
type BudgetRequest struct {
	CategoryID int64       `json:"categoryId"`
	Amount     core.Money  `json:"amount"`
	Period     core.Period `json:"period"`
}

func (c *Client) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	var budgets []core.Budget
	if err := c.get(ctx, "/budgets", nil, &budgets); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

func (c *Client) BudgetsByPeriod(ctx context.Context, year, month int) ([]core.Budget, error) {
	var budgets []core.Budget
	path := fmt.Sprintf("/budgets/period/%d/%d", year, month)
	if err := c.get(ctx, path, nil, &budgets); err != nil {
		return nil, fmt.Errorf("budgets for period %d-%02d: %w", year, month, err)
	}
	return budgets, nil
}

func (c *Client) GetBudget(ctx context.Context, id int64) (core.Budget, error) {
	var budget core.Budget
	if err := c.get(ctx, fmt.Sprintf("/budgets/%d", id), nil, &budget); err != nil {
		return core.Budget{}, fmt.Errorf("get budget %d: %w", id, err)
	}
	return budget, nil
}

func (c *Client) CreateBudget(ctx context.Context, req BudgetRequest) (core.Budget, error) {
	var budget core.Budget
	if err := c.post(ctx, "/budgets", req, &budget); err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	return budget, nil
}

func (c *Client) UpdateBudget(ctx context.Context, id int64, req BudgetRequest) (core.Budget, error) {
	var budget core.Budget
	if err := c.put(ctx, fmt.Sprintf("/budgets/%d", id), req, &budget); err != nil {
		return core.Budget{}, fmt.Errorf("update budget %d: %w", id, err)
	}
	return budget, nil
}

func (c *Client) DeleteBudget(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/budgets/%d", id)); err != nil {
		return fmt.Errorf("delete budget %d: %w", id, err)
	}
	return nil
}
