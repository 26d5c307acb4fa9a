package controller

import (
	"context"
	"sync"

	"finboard/internal/api"
	"finboard/internal/core"
	"finboard/internal/log"
)

// Budgets drives the budget list, either across all periods or scoped to a
// single month. The active scope is kept so mutation reloads land back on
// the same view.
type Budgets struct {
	api        BudgetsAPI
	logger     *log.Logger
	list       listState[core.Budget]
	onMutation func()

	mu     sync.Mutex
	period *core.Period
}

func NewBudgets(a BudgetsAPI, logger *log.Logger) *Budgets {
	return &Budgets{
		api:    a,
		logger: logger.WithComponent(log.ComponentBudgets),
	}
}

// OnMutation registers a hook run after every successful write.
func (c *Budgets) OnMutation(fn func()) {
	c.onMutation = fn
}

func (c *Budgets) mutated() {
	if c.onMutation != nil {
		c.onMutation()
	}
}

// Load fetches all budgets and clears any period scope.
func (c *Budgets) Load(ctx context.Context) error {
	c.mu.Lock()
	c.period = nil
	c.mu.Unlock()
	return c.reload(ctx)
}

// LoadPeriod scopes the list to one month.
func (c *Budgets) LoadPeriod(ctx context.Context, year, month int) error {
	p := core.NewPeriod(year, month)
	if err := p.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.period = &p
	c.mu.Unlock()
	return c.reload(ctx)
}

func (c *Budgets) reload(ctx context.Context) error {
	c.mu.Lock()
	period := c.period
	c.mu.Unlock()

	var year, month int
	if period != nil {
		var err error
		if year, month, err = period.Parse(); err != nil {
			return err
		}
	}

	ticket := c.list.begin()

	var (
		budgets []core.Budget
		err     error
	)
	if period != nil {
		budgets, err = c.api.BudgetsByPeriod(ctx, year, month)
	} else {
		budgets, err = c.api.ListBudgets(ctx)
	}

	if discard(ctx) {
		c.list.abandon(ticket)
		return ctx.Err()
	}
	if err != nil {
		c.logger.Error("load budgets", log.FieldOperation, log.OpLoad, log.FieldError, err)
	}
	c.list.complete(ticket, budgets, err, "Failed to load budgets")
	return err
}

func (c *Budgets) Create(ctx context.Context, req api.BudgetRequest) error {
	if _, err := c.api.CreateBudget(ctx, req); err != nil {
		c.logger.Error("create budget", log.FieldOperation, log.OpCreate, log.FieldError, err)
		c.list.setError("Failed to save budget")
		return err
	}
	c.mutated()
	return c.reload(ctx)
}

func (c *Budgets) Update(ctx context.Context, id int64, req api.BudgetRequest) error {
	if _, err := c.api.UpdateBudget(ctx, id, req); err != nil {
		c.logger.Error("update budget", log.FieldOperation, log.OpUpdate, log.FieldEntityID, id, log.FieldError, err)
		c.list.setError("Failed to save budget")
		return err
	}
	c.mutated()
	return c.reload(ctx)
}

func (c *Budgets) Delete(ctx context.Context, id int64) error {
	if err := c.api.DeleteBudget(ctx, id); err != nil {
		c.logger.Error("delete budget", log.FieldOperation, log.OpDelete, log.FieldEntityID, id, log.FieldError, err)
		c.list.setError("Failed to delete budget")
		return err
	}
	c.mutated()
	return c.reload(ctx)
}

func (c *Budgets) Budgets() []core.Budget { return c.list.Items() }
func (c *Budgets) Err() string            { return c.list.Err() }
func (c *Budgets) Loading() bool          { return c.list.Loading() }

// Period returns the active scope, or nil when showing all budgets.
func (c *Budgets) Period() *core.Period {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.period == nil {
		return nil
	}
	p := *c.period
	return &p
}
