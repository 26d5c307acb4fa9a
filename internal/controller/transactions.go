package controller

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"finboard/internal/api"
	"finboard/internal/core"
	"finboard/internal/log"
)

// TransactionFilter narrows the transaction list. At most one dimension is
// honored, checked in order: date range, account, category. A zero filter
// means the plain paginated list.
type TransactionFilter struct {
	Start      time.Time
	End        time.Time
	AccountID  int64
	CategoryID int64
}

func (f TransactionFilter) byDate() bool { return !f.Start.IsZero() && !f.End.IsZero() }

func (f TransactionFilter) isZero() bool {
	return !f.byDate() && f.AccountID == 0 && f.CategoryID == 0
}

// Transactions drives the transaction table: server-side pagination,
// filters, and the reference data the entry form needs.
type Transactions struct {
	api        TransactionsAPI
	logger     *log.Logger
	list       listState[core.Transaction]
	onMutation func()

	mu         sync.Mutex
	page       int
	size       int
	total      int64
	totalPages int
	filter     TransactionFilter
	accounts   []core.Account
	categories []core.Category
}

func NewTransactions(a TransactionsAPI, pageSize int, logger *log.Logger) *Transactions {
	return &Transactions{
		api:    a,
		size:   pageSize,
		logger: logger.WithComponent(log.ComponentTransactions),
	}
}

// OnMutation registers a hook run after every successful write. The app
// hangs report-cache invalidation here; every write changes the server
// aggregates.
func (c *Transactions) OnMutation(fn func()) {
	c.onMutation = fn
}

func (c *Transactions) mutated() {
	if c.onMutation != nil {
		c.onMutation()
	}
}

// Mount loads the first page together with the form's reference data. A
// reference-data failure is logged but does not block the table.
func (c *Transactions) Mount(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.Load(gctx) })
	g.Go(func() error {
		accounts, err := c.api.ListAccounts(gctx)
		if err != nil {
			c.logger.Warn("load accounts for form", log.FieldError, err)
			return nil
		}
		c.mu.Lock()
		c.accounts = accounts
		c.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		categories, err := c.api.ListCategories(gctx)
		if err != nil {
			c.logger.Warn("load categories for form", log.FieldError, err)
			return nil
		}
		c.mu.Lock()
		c.categories = categories
		c.mu.Unlock()
		return nil
	})
	return g.Wait()
}

// Load fetches the list for the current page and filter.
func (c *Transactions) Load(ctx context.Context) error {
	c.mu.Lock()
	page, size, filter := c.page, c.size, c.filter
	c.mu.Unlock()

	ticket := c.list.begin()

	var (
		items []core.Transaction
		total int64
		pages int
		err   error
	)
	switch {
	case filter.byDate():
		items, err = c.api.TransactionsByDateRange(ctx, filter.Start, filter.End)
		total, pages = int64(len(items)), 1
	case filter.AccountID != 0:
		items, err = c.api.TransactionsByAccount(ctx, filter.AccountID)
		total, pages = int64(len(items)), 1
	case filter.CategoryID != 0:
		items, err = c.api.TransactionsByCategory(ctx, filter.CategoryID)
		total, pages = int64(len(items)), 1
	default:
		var result api.TransactionPage
		result, err = c.api.ListTransactions(ctx, page, size)
		items, total, pages = result.Content, result.TotalElements, result.TotalPages
	}

	if discard(ctx) {
		c.list.abandon(ticket)
		return ctx.Err()
	}
	if err != nil {
		c.logger.Error("load transactions", log.FieldOperation, log.OpLoad, log.FieldPage, page, log.FieldError, err)
	}
	if c.list.complete(ticket, items, err, "Failed to load transactions") && err == nil {
		c.mu.Lock()
		c.total, c.totalPages = total, pages
		c.mu.Unlock()
	}
	return err
}

// SetFilter applies a new filter and reloads from the first page.
func (c *Transactions) SetFilter(ctx context.Context, f TransactionFilter) error {
	c.mu.Lock()
	c.filter = f
	c.page = 0
	c.mu.Unlock()
	return c.Load(ctx)
}

// ClearFilter returns to the unfiltered paginated list.
func (c *Transactions) ClearFilter(ctx context.Context) error {
	return c.SetFilter(ctx, TransactionFilter{})
}

// SetPage moves to a 0-based page and reloads. Out-of-range pages are
// clamped to the known bounds.
func (c *Transactions) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	if page < 0 {
		page = 0
	}
	if c.totalPages > 0 && page >= c.totalPages {
		page = c.totalPages - 1
	}
	c.page = page
	c.mu.Unlock()
	return c.Load(ctx)
}

func (c *Transactions) Create(ctx context.Context, req api.TransactionRequest) error {
	if _, err := c.api.CreateTransaction(ctx, req); err != nil {
		c.logger.Error("create transaction", log.FieldOperation, log.OpCreate, log.FieldError, err)
		c.list.setError("Failed to save transaction")
		return err
	}
	c.mutated()
	return c.Load(ctx)
}

func (c *Transactions) Update(ctx context.Context, id int64, req api.TransactionRequest) error {
	if _, err := c.api.UpdateTransaction(ctx, id, req); err != nil {
		c.logger.Error("update transaction", log.FieldOperation, log.OpUpdate, log.FieldEntityID, id, log.FieldError, err)
		c.list.setError("Failed to save transaction")
		return err
	}
	c.mutated()
	return c.Load(ctx)
}

func (c *Transactions) Delete(ctx context.Context, id int64) error {
	if err := c.api.DeleteTransaction(ctx, id); err != nil {
		c.logger.Error("delete transaction", log.FieldOperation, log.OpDelete, log.FieldEntityID, id, log.FieldError, err)
		c.list.setError("Failed to delete transaction")
		return err
	}
	c.mutated()
	return c.Load(ctx)
}

func (c *Transactions) Transactions() []core.Transaction { return c.list.Items() }
func (c *Transactions) Err() string                      { return c.list.Err() }
func (c *Transactions) Loading() bool                    { return c.list.Loading() }

func (c *Transactions) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Transactions) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Transactions) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

func (c *Transactions) Filter() TransactionFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Transactions) Accounts() []core.Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

func (c *Transactions) Categories() []core.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.Category, len(c.categories))
	copy(out, c.categories)
	return out
}
