package controller

import (
	"context"
	"sync"

	"finboard/internal/api"
	"finboard/internal/core"
	"finboard/internal/log"
)

// Goals drives the savings-goal list with an optional status filter.
type Goals struct {
	api        GoalsAPI
	logger     *log.Logger
	list       listState[core.Goal]
	onMutation func()

	mu     sync.Mutex
	status *core.GoalStatus
}

func NewGoals(a GoalsAPI, logger *log.Logger) *Goals {
	return &Goals{
		api:    a,
		logger: logger.WithComponent(log.ComponentGoals),
	}
}

// OnMutation registers a hook run after every successful write.
func (c *Goals) OnMutation(fn func()) {
	c.onMutation = fn
}

func (c *Goals) mutated() {
	if c.onMutation != nil {
		c.onMutation()
	}
}

// Load fetches all goals and clears any status filter.
func (c *Goals) Load(ctx context.Context) error {
	c.mu.Lock()
	c.status = nil
	c.mu.Unlock()
	return c.reload(ctx)
}

// LoadByStatus scopes the list to one status.
func (c *Goals) LoadByStatus(ctx context.Context, status core.GoalStatus) error {
	if !status.IsValid() {
		return core.ErrInvalidType
	}
	c.mu.Lock()
	c.status = &status
	c.mu.Unlock()
	return c.reload(ctx)
}

func (c *Goals) reload(ctx context.Context) error {
	c.mu.Lock()
	status := c.status
	c.mu.Unlock()

	ticket := c.list.begin()

	var (
		goals []core.Goal
		err   error
	)
	if status != nil {
		goals, err = c.api.GoalsByStatus(ctx, *status)
	} else {
		goals, err = c.api.ListGoals(ctx)
	}

	if discard(ctx) {
		c.list.abandon(ticket)
		return ctx.Err()
	}
	if err != nil {
		c.logger.Error("load goals", log.FieldOperation, log.OpLoad, log.FieldError, err)
	}
	c.list.complete(ticket, goals, err, "Failed to load goals")
	return err
}

func (c *Goals) Create(ctx context.Context, req api.GoalRequest) error {
	if _, err := c.api.CreateGoal(ctx, req); err != nil {
		c.logger.Error("create goal", log.FieldOperation, log.OpCreate, log.FieldError, err)
		c.list.setError("Failed to save goal")
		return err
	}
	c.mutated()
	return c.reload(ctx)
}

func (c *Goals) Update(ctx context.Context, id int64, req api.GoalRequest) error {
	if _, err := c.api.UpdateGoal(ctx, id, req); err != nil {
		c.logger.Error("update goal", log.FieldOperation, log.OpUpdate, log.FieldEntityID, id, log.FieldError, err)
		c.list.setError("Failed to save goal")
		return err
	}
	c.mutated()
	return c.reload(ctx)
}

// UpdateProgress sets a goal's current saved amount.
func (c *Goals) UpdateProgress(ctx context.Context, id int64, amount core.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if _, err := c.api.UpdateGoalProgress(ctx, id, amount); err != nil {
		c.logger.Error("update goal progress", log.FieldOperation, log.OpUpdate, log.FieldEntityID, id, log.FieldError, err)
		c.list.setError("Failed to update progress")
		return err
	}
	c.mutated()
	return c.reload(ctx)
}

func (c *Goals) Delete(ctx context.Context, id int64) error {
	if err := c.api.DeleteGoal(ctx, id); err != nil {
		c.logger.Error("delete goal", log.FieldOperation, log.OpDelete, log.FieldEntityID, id, log.FieldError, err)
		c.list.setError("Failed to delete goal")
		return err
	}
	c.mutated()
	return c.reload(ctx)
}

func (c *Goals) Goals() []core.Goal { return c.list.Items() }
func (c *Goals) Err() string        { return c.list.Err() }
func (c *Goals) Loading() bool      { return c.list.Loading() }

// Status returns the active filter, or nil when showing all goals.
func (c *Goals) Status() *core.GoalStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == nil {
		return nil
	}
	s := *c.status
	return &s
}
