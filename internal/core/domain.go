package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	AccountChecking   AccountType = "CHECKING"
	AccountSavings    AccountType = "SAVINGS"
	AccountCreditCard AccountType = "CREDIT_CARD"
	AccountInvestment AccountType = "INVESTMENT"
	AccountCash       AccountType = "CASH"
	AccountOther      AccountType = "OTHER"
)

const (
	TransactionIncome   TransactionType = "INCOME"
	TransactionExpense  TransactionType = "EXPENSE"
	TransactionTransfer TransactionType = "TRANSFER"
)

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

const (
	GoalInProgress GoalStatus = "IN_PROGRESS"
	GoalAchieved   GoalStatus = "ACHIEVED"
	GoalFailed     GoalStatus = "FAILED"
)

const (
	NotificationBudgetAlert   NotificationType = "BUDGET_ALERT"
	NotificationGoalDeadline  NotificationType = "GOAL_DEADLINE"
	NotificationAccountUpdate NotificationType = "ACCOUNT_UPDATE"
)

type (
	AccountType      string
	TransactionType  string
	CategoryType     string
	GoalStatus       string
	NotificationType string

	// Session is the authenticated identity plus its bearer token. Owned
	// exclusively by the session store; token and identity are persisted and
	// restored as one unit.
	Session struct {
		ID        int64  `json:"id"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Token     string `json:"-"`
	}

	// Account is a server-owned financial account. The client holds a
	// read/write cache per list view, never an authoritative copy.
	Account struct {
		ID          int64       `json:"id"`
		Name        string      `json:"name"`
		Type        AccountType `json:"type"`
		Balance     Money       `json:"balance"`
		Institution string      `json:"institution,omitempty"`
		Description string      `json:"description,omitempty"`
	}

	// Transaction references Account and Category by id. A deleted category
	// leaves Category nil; display code must not assume referential integrity.
	Transaction struct {
		ID              int64           `json:"id"`
		Description     string          `json:"description"`
		Amount          Money           `json:"amount"`
		Type            TransactionType `json:"type"`
		TransactionDate time.Time       `json:"transactionDate"`
		Account         *Account        `json:"account"`
		Category        *Category       `json:"category,omitempty"`
		Notes           string          `json:"notes,omitempty"`
	}

	// Category is read-only from the client's perspective.
	Category struct {
		ID    int64        `json:"id"`
		Name  string       `json:"name"`
		Type  CategoryType `json:"type"`
		Color string       `json:"color,omitempty"`
	}

	// Budget carries two server-computed fields, SpentAmount and
	// SpentPercentage, which the client renders verbatim and never recomputes.
	Budget struct {
		ID              int64     `json:"id"`
		Category        *Category `json:"category"`
		Amount          Money     `json:"amount"`
		Period          Period    `json:"period"`
		SpentAmount     Money     `json:"spentAmount"`
		SpentPercentage float64   `json:"spentPercentage"`
	}

	// Goal tracks a savings target. ProgressPercentage and DaysRemaining are
	// server-computed.
	Goal struct {
		ID                 int64      `json:"id"`
		Name               string     `json:"name"`
		Description        string     `json:"description,omitempty"`
		TargetAmount       Money      `json:"targetAmount"`
		CurrentAmount      Money      `json:"currentAmount"`
		TargetDate         time.Time  `json:"targetDate"`
		Status             GoalStatus `json:"status"`
		Account            *Account   `json:"account,omitempty"`
		ProgressPercentage float64    `json:"progressPercentage"`
		DaysRemaining      int        `json:"daysRemaining"`
	}

	// Notification transitions unread -> read only through an explicit client
	// acknowledgement, never automatically.
	Notification struct {
		ID        int64            `json:"id"`
		Type      NotificationType `json:"type"`
		Message   string           `json:"message"`
		Read      bool             `json:"read"`
		CreatedAt time.Time        `json:"createdAt"`
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyName          = errors.New("empty name")
	ErrEmptyDescription   = errors.New("empty description")
	ErrInvalidType        = errors.New("invalid type")
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrMissingAccount     = errors.New("missing account reference")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidCredentials = errors.New("email and password are required")
)

func (t AccountType) IsValid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCreditCard, AccountInvestment, AccountCash, AccountOther:
		return true
	}
	return false
}

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

func (t CategoryType) IsValid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalInProgress, GoalAchieved, GoalFailed:
		return true
	}
	return false
}

// Period is a budget month in "YYYY-MM" form.
type Period string

// NewPeriod builds a Period from a year and a 1-based month.
func NewPeriod(year, month int) Period {
	return Period(fmt.Sprintf("%04d-%02d", year, month))
}

// Parse splits the period into year and month, validating both.
func (p Period) Parse() (year, month int, err error) {
	t, err := time.Parse("2006-01", string(p))
	if err != nil {
		return 0, 0, ErrInvalidPeriod
	}
	return t.Year(), int(t.Month()), nil
}

func (p Period) Validate() error {
	_, _, err := p.Parse()
	return err
}

// IsAuthenticated reports whether the session carries both a token and an
// identity. The two are never valid in isolation.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != "" && s.ID != 0
}

// DisplayName is what the navigation chrome shows for the logged-in user.
func (s *Session) DisplayName() string {
	if s == nil || s.FirstName == "" {
		return "User"
	}
	return s.FirstName
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Type.IsValid() {
		return fmt.Errorf("account type %q: %w", a.Type, ErrInvalidType)
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("transaction type %q: %w", t.Type, ErrInvalidType)
	}
	if t.TransactionDate.IsZero() {
		return ErrInvalidDate
	}
	if t.Account == nil || t.Account.ID == 0 {
		return ErrMissingAccount
	}
	return nil
}

func (b Budget) Validate() error {
	if b.Category == nil || b.Category.ID == 0 {
		return errors.New("missing category reference")
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	return b.Period.Validate()
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if err := g.TargetAmount.Validate(); err != nil {
		return err
	}
	if g.TargetDate.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Remaining is the display delta between the goal target and its current
// amount; never negative.
func (g Goal) Remaining() Money {
	rem := g.TargetAmount.Sub(g.CurrentAmount)
	if rem.Cents < 0 {
		return Money{}
	}
	return rem
}
