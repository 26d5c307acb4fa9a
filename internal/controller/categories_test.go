package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"finboard/internal/core"
)

type fakeCategoriesAPI struct {
	all       []core.Category
	byType    map[core.CategoryType][]core.Category
	listErr   error
	allCalls  int
	typeCalls int
}

func (f *fakeCategoriesAPI) ListCategories(ctx context.Context) ([]core.Category, error) {
	f.allCalls++
	return f.all, f.listErr
}

func (f *fakeCategoriesAPI) CategoriesByType(ctx context.Context, t core.CategoryType) ([]core.Category, error) {
	f.typeCalls++
	return f.byType[t], nil
}

func TestCategoriesAllCaches(t *testing.T) {
	fake := &fakeCategoriesAPI{all: []core.Category{{ID: 1, Name: "Groceries"}}}
	c := NewCategories(fake, time.Minute, testLogger())

	for i := 0; i < 3; i++ {
		categories, err := c.All(context.Background())
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if len(categories) != 1 {
			t.Fatalf("len(All()) = %d, want 1", len(categories))
		}
	}
	if fake.allCalls != 1 {
		t.Errorf("API calls = %d across 3 reads, want 1", fake.allCalls)
	}
}

func TestCategoriesErrorNotCached(t *testing.T) {
	fake := &fakeCategoriesAPI{listErr: errors.New("boom")}
	c := NewCategories(fake, time.Minute, testLogger())

	if _, err := c.All(context.Background()); err == nil {
		t.Fatal("All() error = nil, want error")
	}

	fake.listErr = nil
	fake.all = []core.Category{{ID: 1}}
	categories, err := c.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v after recovery", err)
	}
	if len(categories) != 1 {
		t.Errorf("len(All()) = %d, want 1", len(categories))
	}
}

func TestCategoriesByType(t *testing.T) {
	fake := &fakeCategoriesAPI{
		byType: map[core.CategoryType][]core.Category{
			core.CategoryTypeExpense: {{ID: 2, Name: "Rent", Type: core.CategoryTypeExpense}},
		},
	}
	c := NewCategories(fake, time.Minute, testLogger())

	for i := 0; i < 2; i++ {
		categories, err := c.ByType(context.Background(), core.CategoryTypeExpense)
		if err != nil {
			t.Fatalf("ByType() error = %v", err)
		}
		if len(categories) != 1 {
			t.Fatalf("len(ByType()) = %d, want 1", len(categories))
		}
	}
	if fake.typeCalls != 1 {
		t.Errorf("API calls = %d across 2 reads, want 1", fake.typeCalls)
	}

	if _, err := c.ByType(context.Background(), core.CategoryType("WEIRD")); err == nil {
		t.Fatal("ByType() error = nil for unknown type, want error")
	}
}

func TestCategoriesInvalidate(t *testing.T) {
	fake := &fakeCategoriesAPI{all: []core.Category{{ID: 1}}}
	c := NewCategories(fake, time.Minute, testLogger())

	if _, err := c.All(context.Background()); err != nil {
		t.Fatalf("All() error = %v", err)
	}
	c.Invalidate()
	if _, err := c.All(context.Background()); err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if fake.allCalls != 2 {
		t.Errorf("API calls = %d after invalidate, want 2", fake.allCalls)
	}
}
