package controller

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"finboard/internal/core"
	"finboard/internal/log"
)

const categoryCacheKeyAll = "all"

// Categories serves the server-defined category catalog. Categories change
// rarely, so results are cached with a TTL instead of refetched on every
// form open.
type Categories struct {
	api    CategoriesAPI
	cache  *gocache.Cache
	logger *log.Logger
}

func NewCategories(a CategoriesAPI, ttl time.Duration, logger *log.Logger) *Categories {
	return &Categories{
		api:    a,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger.WithComponent(log.ComponentCategories),
	}
}

// All returns every category, from cache when fresh.
func (c *Categories) All(ctx context.Context) ([]core.Category, error) {
	if v, ok := c.cache.Get(categoryCacheKeyAll); ok {
		return v.([]core.Category), nil
	}
	categories, err := c.api.ListCategories(ctx)
	if err != nil {
		c.logger.Error("load categories", log.FieldOperation, log.OpLoad, log.FieldError, err)
		return nil, err
	}
	c.cache.SetDefault(categoryCacheKeyAll, categories)
	return categories, nil
}

// ByType returns the income or expense subset, from cache when fresh.
func (c *Categories) ByType(ctx context.Context, t core.CategoryType) ([]core.Category, error) {
	if !t.IsValid() {
		return nil, core.ErrInvalidType
	}
	key := "type:" + string(t)
	if v, ok := c.cache.Get(key); ok {
		return v.([]core.Category), nil
	}
	categories, err := c.api.CategoriesByType(ctx, t)
	if err != nil {
		c.logger.Error("load categories", log.FieldOperation, log.OpLoad, log.FieldError, err)
		return nil, err
	}
	c.cache.SetDefault(key, categories)
	return categories, nil
}

// Invalidate drops every cached entry. Called on logout so the next session
// does not see another user's view of the catalog.
func (c *Categories) Invalidate() {
	c.cache.Flush()
}
