package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"finboard/internal/core"
)

// GoalRequest is the create/update payload for savings goals.
type GoalRequest struct {
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	TargetAmount  core.Money `json:"targetAmount"`
	CurrentAmount core.Money `json:"currentAmount"`
	TargetDate    time.Time  `json:"targetDate"`
	AccountID     *int64     `json:"accountId,omitempty"`
}

func (c *Client) ListGoals(ctx context.Context) ([]core.Goal, error) {
	var goals []core.Goal
	if err := c.get(ctx, "/goals", nil, &goals); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (c *Client) GoalsByStatus(ctx context.Context, status core.GoalStatus) ([]core.Goal, error) {
	var goals []core.Goal
	if err := c.get(ctx, fmt.Sprintf("/goals/status/%s", status), nil, &goals); err != nil {
		return nil, fmt.Errorf("goals with status %s: %w", status, err)
	}
	return goals, nil
}

func (c *Client) GetGoal(ctx context.Context, id int64) (core.Goal, error) {
	var goal core.Goal
	if err := c.get(ctx, fmt.Sprintf("/goals/%d", id), nil, &goal); err != nil {
		return core.Goal{}, fmt.Errorf("get goal %d: %w", id, err)
	}
	return goal, nil
}

func (c *Client) CreateGoal(ctx context.Context, req GoalRequest) (core.Goal, error) {
	var goal core.Goal
	if err := c.post(ctx, "/goals", req, &goal); err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

func (c *Client) UpdateGoal(ctx context.Context, id int64, req GoalRequest) (core.Goal, error) {
	var goal core.Goal
	if err := c.put(ctx, fmt.Sprintf("/goals/%d", id), req, &goal); err != nil {
		return core.Goal{}, fmt.Errorf("update goal %d: %w", id, err)
	}
	return goal, nil
}

// UpdateGoalProgress sets the goal's current amount. The amount travels as a
// query parameter, which is how the server defines this endpoint; the
// response carries the refreshed server-computed progress fields.
func (c *Client) UpdateGoalProgress(ctx context.Context, id int64, amount core.Money) (core.Goal, error) {
	query := url.Values{"amount": {amount.String()}}
	var goal core.Goal
	if err := c.patch(ctx, fmt.Sprintf("/goals/%d/progress", id), query, &goal); err != nil {
		return core.Goal{}, fmt.Errorf("update goal %d progress: %w", id, err)
	}
	return goal, nil
}

func (c *Client) DeleteGoal(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/goals/%d", id)); err != nil {
		return fmt.Errorf("delete goal %d: %w", id, err)
	}
	return nil
}
