package core

import "time"

// Server-computed analytics read models. The client is a passive renderer of
// these payloads; nothing in them is recomputed locally.
type (
	// DashboardSummary backs the dashboard landing view.
	DashboardSummary struct {
		TotalBalance    Money   `json:"totalBalance"`
		MonthlyIncome   Money   `json:"monthlyIncome"`
		MonthlyExpenses Money   `json:"monthlyExpenses"`
		NetCashFlow     Money   `json:"netCashFlow"`
		AccountCount    int     `json:"accountCount"`
		BudgetCount     int     `json:"budgetCount"`
		GoalCount       int     `json:"goalCount"`
		SavingsRate     float64 `json:"savingsRate"`
	}

	// CategoryExpense is one slice of the expenses-by-category breakdown.
	CategoryExpense struct {
		CategoryID   int64   `json:"categoryId"`
		CategoryName string  `json:"categoryName"`
		Color        string  `json:"color,omitempty"`
		Amount       Money   `json:"amount"`
		Percentage   float64 `json:"percentage"`
	}

	// CashFlow is the income/expense aggregate for one month.
	CashFlow struct {
		Year     int   `json:"year"`
		Month    int   `json:"month"`
		Income   Money `json:"income"`
		Expenses Money `json:"expenses"`
		Net      Money `json:"net"`
	}

	// MonthlySummary is one row of the month-over-month report.
	MonthlySummary struct {
		Period   Period `json:"period"`
		Income   Money  `json:"income"`
		Expenses Money  `json:"expenses"`
		Savings  Money  `json:"savings"`
	}

	// BalancePoint is one sample of an account's balance history.
	BalancePoint struct {
		Date    time.Time `json:"date"`
		Balance Money     `json:"balance"`
	}
)
