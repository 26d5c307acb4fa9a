package controller

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"finboard/internal/api"
	"finboard/internal/core"
	"finboard/internal/log"
)

// Accounts drives the account list and the per-account detail view.
type Accounts struct {
	api        AccountsAPI
	logger     *log.Logger
	list       listState[core.Account]
	onMutation func()
}

func NewAccounts(a AccountsAPI, logger *log.Logger) *Accounts {
	return &Accounts{
		api:    a,
		logger: logger.WithComponent(log.ComponentAccounts),
	}
}

// OnMutation registers a hook run after every successful write.
func (c *Accounts) OnMutation(fn func()) {
	c.onMutation = fn
}

func (c *Accounts) mutated() {
	if c.onMutation != nil {
		c.onMutation()
	}
}

func (c *Accounts) Load(ctx context.Context) error {
	ticket := c.list.begin()
	accounts, err := c.api.ListAccounts(ctx)
	if discard(ctx) {
		c.list.abandon(ticket)
		return ctx.Err()
	}
	if err != nil {
		c.logger.Error("load accounts", log.FieldOperation, log.OpLoad, log.FieldError, err)
	}
	c.list.complete(ticket, accounts, err, "Failed to load accounts")
	return err
}

func (c *Accounts) Create(ctx context.Context, req api.AccountRequest) error {
	if _, err := c.api.CreateAccount(ctx, req); err != nil {
		c.logger.Error("create account", log.FieldOperation, log.OpCreate, log.FieldError, err)
		c.list.setError("Failed to save account")
		return err
	}
	c.mutated()
	return c.Load(ctx)
}

func (c *Accounts) Update(ctx context.Context, id int64, req api.AccountRequest) error {
	if _, err := c.api.UpdateAccount(ctx, id, req); err != nil {
		c.logger.Error("update account", log.FieldOperation, log.OpUpdate, log.FieldEntityID, id, log.FieldError, err)
		c.list.setError("Failed to save account")
		return err
	}
	c.mutated()
	return c.Load(ctx)
}

func (c *Accounts) Delete(ctx context.Context, id int64) error {
	if err := c.api.DeleteAccount(ctx, id); err != nil {
		c.logger.Error("delete account", log.FieldOperation, log.OpDelete, log.FieldEntityID, id, log.FieldError, err)
		c.list.setError("Failed to delete account")
		return err
	}
	c.mutated()
	return c.Load(ctx)
}

func (c *Accounts) Accounts() []core.Account { return c.list.Items() }
func (c *Accounts) Err() string              { return c.list.Err() }
func (c *Accounts) Loading() bool            { return c.list.Loading() }

// AccountDetails bundles everything the detail view renders.
type AccountDetails struct {
	Account      core.Account
	Transactions []core.Transaction
	History      []core.BalancePoint
}

// Details fetches the account, its transactions, and its balance history
// over the given window concurrently.
func (c *Accounts) Details(ctx context.Context, id int64, start, end time.Time) (AccountDetails, error) {
	var details AccountDetails
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		account, err := c.api.GetAccount(ctx, id)
		if err != nil {
			return fmt.Errorf("account %d: %w", id, err)
		}
		details.Account = account
		return nil
	})
	g.Go(func() error {
		txs, err := c.api.TransactionsByAccount(ctx, id)
		if err != nil {
			return fmt.Errorf("transactions for account %d: %w", id, err)
		}
		details.Transactions = txs
		return nil
	})
	g.Go(func() error {
		history, err := c.api.AccountBalanceHistory(ctx, id, start, end)
		if err != nil {
			return fmt.Errorf("balance history for account %d: %w", id, err)
		}
		details.History = history
		return nil
	})
	if err := g.Wait(); err != nil {
		c.logger.Error("load account details", log.FieldEntityID, id, log.FieldError, err)
		return AccountDetails{}, err
	}
	return details, nil
}
