package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"finboard/internal/core"
)

const dateParamLayout = "2006-01-02"

// TransactionPage is the server's paginated envelope. The server owns
// totalElements; the page index is 0-based.
type TransactionPage struct {
	Content       []core.Transaction `json:"content"`
	TotalElements int64              `json:"totalElements"`
	TotalPages    int                `json:"totalPages"`
	Number        int                `json:"number"`
	Size          int                `json:"size"`
}

// TransactionRequest is the create/update payload. Account and category are
// sent as ids; CategoryID nil means uncategorized.
type TransactionRequest struct {
	Description     string               `json:"description"`
	Amount          core.Money           `json:"amount"`
	Type            core.TransactionType `json:"type"`
	TransactionDate time.Time            `json:"transactionDate"`
	AccountID       int64                `json:"accountId"`
	CategoryID      *int64               `json:"categoryId,omitempty"`
	Notes           string               `json:"notes,omitempty"`
}

func (c *Client) ListTransactions(ctx context.Context, page, size int) (TransactionPage, error) {
	query := url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
	var result TransactionPage
	if err := c.get(ctx, "/transactions", query, &result); err != nil {
		return TransactionPage{}, fmt.Errorf("list transactions: %w", err)
	}
	return result, nil
}

func (c *Client) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	var tx core.Transaction
	if err := c.get(ctx, fmt.Sprintf("/transactions/%d", id), nil, &tx); err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return tx, nil
}

func (c *Client) TransactionsByDateRange(ctx context.Context, start, end time.Time) ([]core.Transaction, error) {
	query := url.Values{
		"startDate": {start.Format(dateParamLayout)},
		"endDate":   {end.Format(dateParamLayout)},
	}
	var txs []core.Transaction
	if err := c.get(ctx, "/transactions/date-range", query, &txs); err != nil {
		return nil, fmt.Errorf("transactions by date range: %w", err)
	}
	return txs, nil
}

func (c *Client) TransactionsByAccount(ctx context.Context, accountID int64) ([]core.Transaction, error) {
	var txs []core.Transaction
	if err := c.get(ctx, fmt.Sprintf("/transactions/account/%d", accountID), nil, &txs); err != nil {
		return nil, fmt.Errorf("transactions by account %d: %w", accountID, err)
	}
	return txs, nil
}

func (c *Client) TransactionsByCategory(ctx context.Context, categoryID int64) ([]core.Transaction, error) {
	var txs []core.Transaction
	if err := c.get(ctx, fmt.Sprintf("/transactions/category/%d", categoryID), nil, &txs); err != nil {
		return nil, fmt.Errorf("transactions by category %d: %w", categoryID, err)
	}
	return txs, nil
}

func (c *Client) CreateTransaction(ctx context.Context, req TransactionRequest) (core.Transaction, error) {
	var tx core.Transaction
	if err := c.post(ctx, "/transactions", req, &tx); err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return tx, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id int64, req TransactionRequest) (core.Transaction, error) {
	var tx core.Transaction
	if err := c.put(ctx, fmt.Sprintf("/transactions/%d", id), req, &tx); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction %d: %w", id, err)
	}
	return tx, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/transactions/%d", id)); err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}
