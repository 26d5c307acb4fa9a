package core

import (
	"errors"
	"testing"
	"time"
)

func TestSessionIsAuthenticated(t *testing.T) {
	tests := []struct {
		name    string
		session *Session
		want    bool
	}{
		{name: "nil session", session: nil, want: false},
		{name: "complete session", session: &Session{ID: 1, Email: "a@b.com", Token: "tok"}, want: true},
		{name: "token without identity", session: &Session{Token: "tok"}, want: false},
		{name: "identity without token", session: &Session{ID: 1, Email: "a@b.com"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.IsAuthenticated(); got != tt.want {
				t.Errorf("IsAuthenticated() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccountValidate(t *testing.T) {
	valid := Account{Name: "Checking", Type: AccountChecking, Balance: Money{Cents: 10000}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid account: %v", err)
	}

	noName := Account{Type: AccountSavings}
	if err := noName.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("missing name: got %v, want ErrEmptyName", err)
	}

	badType := Account{Name: "X", Type: AccountType("WALLET")}
	if err := badType.Validate(); !errors.Is(err, ErrInvalidType) {
		t.Errorf("bad type: got %v, want ErrInvalidType", err)
	}
}

func TestTransactionValidate(t *testing.T) {
	account := &Account{ID: 3, Name: "Checking", Type: AccountChecking}
	base := Transaction{
		Description:     "Groceries",
		Amount:          Money{Cents: 4599},
		Type:            TransactionExpense,
		TransactionDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Account:         account,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid transaction: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{name: "empty description", mutate: func(tr *Transaction) { tr.Description = "  " }, want: ErrEmptyDescription},
		{name: "zero amount", mutate: func(tr *Transaction) { tr.Amount = Money{} }, want: ErrInvalidAmount},
		{name: "bad type", mutate: func(tr *Transaction) { tr.Type = "REFUND" }, want: ErrInvalidType},
		{name: "zero date", mutate: func(tr *Transaction) { tr.TransactionDate = time.Time{} }, want: ErrInvalidDate},
		{name: "no account", mutate: func(tr *Transaction) { tr.Account = nil }, want: ErrMissingAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := base
			tt.mutate(&tr)
			if err := tr.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPeriod(t *testing.T) {
	p := NewPeriod(2024, 3)
	if p != "2024-03" {
		t.Fatalf("NewPeriod = %q, want 2024-03", p)
	}

	year, month, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if year != 2024 || month != 3 {
		t.Errorf("Parse = %d-%d, want 2024-3", year, month)
	}

	for _, bad := range []Period{"2024", "2024-13", "03-2024", "garbage"} {
		if err := bad.Validate(); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("Validate(%q) = %v, want ErrInvalidPeriod", bad, err)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	valid := Budget{
		Category: &Category{ID: 2, Name: "Food", Type: CategoryTypeExpense},
		Amount:   Money{Cents: 30000},
		Period:   "2024-03",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid budget: %v", err)
	}

	missingCategory := valid
	missingCategory.Category = nil
	if err := missingCategory.Validate(); err == nil {
		t.Error("missing category accepted")
	}

	badPeriod := valid
	badPeriod.Period = "March 2024"
	if err := badPeriod.Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("bad period: got %v, want ErrInvalidPeriod", err)
	}
}

func TestGoalRemaining(t *testing.T) {
	g := Goal{TargetAmount: Money{Cents: 50000}, CurrentAmount: Money{Cents: 25000}}
	if got := g.Remaining(); got.Cents != 25000 {
		t.Errorf("Remaining = %d, want 25000", got.Cents)
	}

	overfunded := Goal{TargetAmount: Money{Cents: 100}, CurrentAmount: Money{Cents: 500}}
	if got := overfunded.Remaining(); got.Cents != 0 {
		t.Errorf("overfunded Remaining = %d, want 0", got.Cents)
	}
}
