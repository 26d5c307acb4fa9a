package controller

import (
	"context"
	"testing"

	"finboard/internal/api"
	"finboard/internal/core"
)

type fakeBudgetsAPI struct {
	all         []core.Budget
	byPeriod    map[core.Period][]core.Budget
	periodCalls int
	allCalls    int
}

func (f *fakeBudgetsAPI) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	f.allCalls++
	return f.all, nil
}

func (f *fakeBudgetsAPI) BudgetsByPeriod(ctx context.Context, year, month int) ([]core.Budget, error) {
	f.periodCalls++
	return f.byPeriod[core.NewPeriod(year, month)], nil
}

func (f *fakeBudgetsAPI) CreateBudget(ctx context.Context, req api.BudgetRequest) (core.Budget, error) {
	return core.Budget{ID: 1, Period: req.Period}, nil
}

func (f *fakeBudgetsAPI) UpdateBudget(ctx context.Context, id int64, req api.BudgetRequest) (core.Budget, error) {
	return core.Budget{ID: id, Period: req.Period}, nil
}

func (f *fakeBudgetsAPI) DeleteBudget(ctx context.Context, id int64) error { return nil }

func TestBudgetsLoadAll(t *testing.T) {
	fake := &fakeBudgetsAPI{all: []core.Budget{{ID: 1}, {ID: 2}}}
	c := NewBudgets(fake, testLogger())

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := len(c.Budgets()); got != 2 {
		t.Errorf("len(Budgets()) = %d, want 2", got)
	}
	if c.Period() != nil {
		t.Errorf("Period() = %v, want nil", *c.Period())
	}
}

func TestBudgetsLoadPeriod(t *testing.T) {
	fake := &fakeBudgetsAPI{
		byPeriod: map[core.Period][]core.Budget{
			core.NewPeriod(2026, 3): {{ID: 3, Period: core.NewPeriod(2026, 3)}},
		},
	}
	c := NewBudgets(fake, testLogger())

	if err := c.LoadPeriod(context.Background(), 2026, 3); err != nil {
		t.Fatalf("LoadPeriod() error = %v", err)
	}
	if got := len(c.Budgets()); got != 1 {
		t.Errorf("len(Budgets()) = %d, want 1", got)
	}
	if p := c.Period(); p == nil || *p != core.NewPeriod(2026, 3) {
		t.Errorf("Period() = %v, want 2026-03", p)
	}
}

func TestBudgetsLoadPeriodInvalidMonth(t *testing.T) {
	c := NewBudgets(&fakeBudgetsAPI{}, testLogger())
	if err := c.LoadPeriod(context.Background(), 2026, 13); err == nil {
		t.Fatal("LoadPeriod() error = nil for month 13, want error")
	}
}

// A mutation while a period is selected reloads the same period, not the
// full list.
func TestBudgetsMutationKeepsScope(t *testing.T) {
	fake := &fakeBudgetsAPI{byPeriod: map[core.Period][]core.Budget{}}
	c := NewBudgets(fake, testLogger())

	if err := c.LoadPeriod(context.Background(), 2026, 3); err != nil {
		t.Fatalf("LoadPeriod() error = %v", err)
	}
	if err := c.Create(context.Background(), api.BudgetRequest{Period: core.NewPeriod(2026, 3)}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if fake.periodCalls != 2 {
		t.Errorf("period calls = %d, want 2", fake.periodCalls)
	}
	if fake.allCalls != 0 {
		t.Errorf("all calls = %d, want 0", fake.allCalls)
	}
}
