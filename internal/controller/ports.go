// Package controller holds the feature data controllers: one per entity
// type, each owning fetch/create/update/delete orchestration and the local
// list state a view renders from. Controllers call the API through narrow
// ports so tests can substitute fakes.
package controller

import (
	"context"
	"time"

	"finboard/internal/api"
	"finboard/internal/core"
)

type AccountsAPI interface {
	ListAccounts(ctx context.Context) ([]core.Account, error)
	GetAccount(ctx context.Context, id int64) (core.Account, error)
	CreateAccount(ctx context.Context, req api.AccountRequest) (core.Account, error)
	UpdateAccount(ctx context.Context, id int64, req api.AccountRequest) (core.Account, error)
	DeleteAccount(ctx context.Context, id int64) error

	// The account-details view also shows the account's transactions and
	// balance history.
	TransactionsByAccount(ctx context.Context, accountID int64) ([]core.Transaction, error)
	AccountBalanceHistory(ctx context.Context, accountID int64, start, end time.Time) ([]core.BalancePoint, error)
}

type TransactionsAPI interface {
	ListTransactions(ctx context.Context, page, size int) (api.TransactionPage, error)
	TransactionsByDateRange(ctx context.Context, start, end time.Time) ([]core.Transaction, error)
	TransactionsByAccount(ctx context.Context, accountID int64) ([]core.Transaction, error)
	TransactionsByCategory(ctx context.Context, categoryID int64) ([]core.Transaction, error)
	CreateTransaction(ctx context.Context, req api.TransactionRequest) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, req api.TransactionRequest) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	// Reference data for the transaction form and for resolving refs in the
	// table.
	ListAccounts(ctx context.Context) ([]core.Account, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
}

type BudgetsAPI interface {
	ListBudgets(ctx context.Context) ([]core.Budget, error)
	BudgetsByPeriod(ctx context.Context, year, month int) ([]core.Budget, error)
	CreateBudget(ctx context.Context, req api.BudgetRequest) (core.Budget, error)
	UpdateBudget(ctx context.Context, id int64, req api.BudgetRequest) (core.Budget, error)
	DeleteBudget(ctx context.Context, id int64) error
}

type GoalsAPI interface {
	ListGoals(ctx context.Context) ([]core.Goal, error)
	GoalsByStatus(ctx context.Context, status core.GoalStatus) ([]core.Goal, error)
	CreateGoal(ctx context.Context, req api.GoalRequest) (core.Goal, error)
	UpdateGoal(ctx context.Context, id int64, req api.GoalRequest) (core.Goal, error)
	UpdateGoalProgress(ctx context.Context, id int64, amount core.Money) (core.Goal, error)
	DeleteGoal(ctx context.Context, id int64) error
}

type CategoriesAPI interface {
	ListCategories(ctx context.Context) ([]core.Category, error)
	CategoriesByType(ctx context.Context, t core.CategoryType) ([]core.Category, error)
}

type NotificationsAPI interface {
	UnreadNotifications(ctx context.Context) ([]core.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error
}

type AnalyticsAPI interface {
	DashboardSummary(ctx context.Context) (core.DashboardSummary, error)
	ExpensesByCategory(ctx context.Context, start, end time.Time) ([]core.CategoryExpense, error)
	CashFlow(ctx context.Context, year, month int) (core.CashFlow, error)
	MonthlySummary(ctx context.Context, startYear, startMonth, endYear, endMonth int) ([]core.MonthlySummary, error)
	AccountBalanceHistory(ctx context.Context, accountID int64, start, end time.Time) ([]core.BalancePoint, error)
}

// The real API client satisfies every port.
var (
	_ AccountsAPI      = (*api.Client)(nil)
	_ TransactionsAPI  = (*api.Client)(nil)
	_ BudgetsAPI       = (*api.Client)(nil)
	_ GoalsAPI         = (*api.Client)(nil)
	_ CategoriesAPI    = (*api.Client)(nil)
	_ NotificationsAPI = (*api.Client)(nil)
	_ AnalyticsAPI     = (*api.Client)(nil)
)
