package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finboard/internal/core"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestClientAttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok-123"))
	if _, err := client.ListAccounts(context.Background()); err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestClientOmitsAuthorizationWhenLoggedOut(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken(""))
	if _, err := client.ListCategories(context.Background()); err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if sawAuth {
		t.Error("Authorization header sent without a token")
	}
}

func TestClientAuthRejectionFiresHookAndReturnsAuthError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"message":"token expired"}`))
		}))

		hookCalled := false
		client := New(srv.URL, staticToken("stale"),
			WithAuthExpiredHandler(func(context.Context) { hookCalled = true }))

		_, err := client.ListAccounts(context.Background())
		srv.Close()

		if !IsAuthExpired(err) {
			t.Fatalf("status %d: err = %v, want AuthError", status, err)
		}
		if !hookCalled {
			t.Errorf("status %d: expiry hook not called", status)
		}
		if IsNetworkUnavailable(err) {
			t.Errorf("status %d: classified as network failure", status)
		}
	}
}

func TestClientBusinessErrorDoesNotFireHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"amount must be positive"}`))
	}))
	defer srv.Close()

	hookCalled := false
	client := New(srv.URL, staticToken("tok"),
		WithAuthExpiredHandler(func(context.Context) { hookCalled = true }))

	_, err := client.CreateAccount(context.Background(), AccountRequest{Name: "X"})
	if err == nil {
		t.Fatal("expected error for 422 response")
	}
	if IsAuthExpired(err) {
		t.Error("business error classified as auth expiry")
	}
	if hookCalled {
		t.Error("expiry hook fired for a business error")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("err = %T, want *RequestError", err)
	}
	if reqErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 422", reqErr.Status)
	}
	if reqErr.Message != "amount must be positive" {
		t.Errorf("Message = %q", reqErr.Message)
	}
}

func TestClientNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New(srv.URL, staticToken("tok"))
	_, err := client.ListGoals(context.Background())
	if !IsNetworkUnavailable(err) {
		t.Fatalf("err = %v, want NetworkError", err)
	}
	if IsAuthExpired(err) {
		t.Error("network failure classified as auth expiry")
	}
}

func TestSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/signin" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode credentials: %v", err)
		}
		if creds.Email != "a@b.com" || creds.Password != "x" {
			t.Errorf("credentials = %+v", creds)
		}
		w.Write([]byte(`{"token":"jwt","id":1,"firstName":"Ada","lastName":"Lovelace","email":"a@b.com"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken(""))
	sess, err := client.SignIn(context.Background(), Credentials{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if sess.Token != "jwt" || sess.ID != 1 || sess.FirstName != "Ada" {
		t.Errorf("session = %+v", sess)
	}

	if _, err := client.SignIn(context.Background(), Credentials{}); err == nil {
		t.Error("SignIn with empty credentials should fail before dispatch")
	}
}

func TestListTransactionsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("size") != "10" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`{"content":[{"id":42,"description":"Coffee","amount":3.50,"type":"EXPENSE",
			"transactionDate":"2024-03-10T00:00:00Z","account":{"id":1,"name":"Checking","type":"CHECKING","balance":100.00}}],
			"totalElements":21,"totalPages":3,"number":2,"size":10}`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	page, err := client.ListTransactions(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if page.TotalElements != 21 || page.Number != 2 {
		t.Errorf("page = %+v", page)
	}
	if len(page.Content) != 1 || page.Content[0].Amount.Cents != 350 {
		t.Errorf("content = %+v", page.Content)
	}
}

func TestUpdateGoalProgressSendsAmountQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/goals/5/progress" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("amount"); got != "250.00" {
			t.Errorf("amount = %q, want 250.00", got)
		}
		w.Write([]byte(`{"id":5,"name":"Vacation","targetAmount":500.00,"currentAmount":250.00,
			"targetDate":"2024-12-31T00:00:00Z","status":"IN_PROGRESS","progressPercentage":50,"daysRemaining":120}`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	goal, err := client.UpdateGoalProgress(context.Background(), 5, core.Money{Cents: 25000})
	if err != nil {
		t.Fatalf("UpdateGoalProgress: %v", err)
	}
	if goal.CurrentAmount.Cents != 25000 || goal.ProgressPercentage != 50 {
		t.Errorf("goal = %+v", goal)
	}
}

func TestUnreadCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/notifications/count" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"count":4}`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	count, err := client.UnreadCount(context.Background())
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}
}

func TestBudgetsByPeriodPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/budgets/period/2024/3" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id":1,"category":{"id":2,"name":"Food","type":"EXPENSE"},
			"amount":300.00,"period":"2024-03","spentAmount":120.00,"spentPercentage":40}]`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	budgets, err := client.BudgetsByPeriod(context.Background(), 2024, 3)
	if err != nil {
		t.Fatalf("BudgetsByPeriod: %v", err)
	}
	if len(budgets) != 1 || budgets[0].Period != "2024-03" || budgets[0].SpentPercentage != 40 {
		t.Errorf("budgets = %+v", budgets)
	}
}

func TestExpensesByCategoryDateParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("startDate") != "2024-03-01" || q.Get("endDate") != "2024-03-31" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`[{"categoryId":2,"categoryName":"Food","amount":120.00,"percentage":40}]`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticToken("tok"))
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	expenses, err := client.ExpensesByCategory(context.Background(), start, end)
	if err != nil {
		t.Fatalf("ExpensesByCategory: %v", err)
	}
	if len(expenses) != 1 || expenses[0].Amount.Cents != 12000 {
		t.Errorf("expenses = %+v", expenses)
	}
}
