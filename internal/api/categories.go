package api

import (
	"context"
	"fmt"

	"finboard/internal/core"
)

// Categories are read-only from the client's perspective.

func (c *Client) ListCategories(ctx context.Context) ([]core.Category, error) {
	var categories []core.Category
	if err := c.get(ctx, "/categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (c *Client) CategoriesByType(ctx context.Context, t core.CategoryType) ([]core.Category, error) {
	var categories []core.Category
	if err := c.get(ctx, fmt.Sprintf("/categories/type/%s", t), nil, &categories); err != nil {
		return nil, fmt.Errorf("categories of type %s: %w", t, err)
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var category core.Category
	if err := c.get(ctx, fmt.Sprintf("/categories/%d", id), nil, &category); err != nil {
		return core.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return category, nil
}
