package api

import (
	"context"
	"fmt"

	"finboard/internal/core"
)

// AccountRequest is the create/update payload for accounts.
type AccountRequest struct {
	Name        string           `json:"name"`
	Type        core.AccountType `json:"type"`
	Balance     core.Money       `json:"balance"`
	Institution string           `json:"institution,omitempty"`
	Description string           `json:"description,omitempty"`
}

func (c *Client) ListAccounts(ctx context.Context) ([]core.Account, error) {
	var accounts []core.Account
	if err := c.get(ctx, "/accounts", nil, &accounts); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (c *Client) GetAccount(ctx context.Context, id int64) (core.Account, error) {
	var account core.Account
	if err := c.get(ctx, fmt.Sprintf("/accounts/%d", id), nil, &account); err != nil {
		return core.Account{}, fmt.Errorf("get account %d: %w", id, err)
	}
	return account, nil
}

func (c *Client) CreateAccount(ctx context.Context, req AccountRequest) (core.Account, error) {
	var account core.Account
	if err := c.post(ctx, "/accounts", req, &account); err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

func (c *Client) UpdateAccount(ctx context.Context, id int64, req AccountRequest) (core.Account, error) {
	var account core.Account
	if err := c.put(ctx, fmt.Sprintf("/accounts/%d", id), req, &account); err != nil {
		return core.Account{}, fmt.Errorf("update account %d: %w", id, err)
	}
	return account, nil
}

func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/accounts/%d", id)); err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	return nil
}
