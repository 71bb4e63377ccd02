package financeapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/auth"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/financeapi"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/observability"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/resilience"
	"go.uber.org/zap"
)

func newClient(t *testing.T, handler http.Handler) (*financeapi.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := resilience.Config{
		MaxRetries:     0,
		InitialBackoff: 5 * time.Millisecond,
		MaxConcurrency: 4,
	}
	c := financeapi.New(srv.Client(), srv.URL, cfg, observability.NewMetrics(), zap.NewNop())
	return c, srv
}

func authedCtx() context.Context {
	ctx := auth.WithUserID(context.Background(), "user-1")
	return auth.WithToken(ctx, "test-token")
}

func TestGetSpendOverview(t *testing.T) {
	var gotAuth string
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/transactions/overview" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total_income": 4000,
			"total_expenses": 1000,
			"net_savings": 3000,
			"categories": {"grocery": 500, "restaurant": 300, "utilities": 200},
			"monthly_trend": [{"month": "2026-08", "income": 4000, "expenses": 1000}]
		}`))
	}))

	ov, err := c.GetSpendOverview(authedCtx())
	if err != nil {
		t.Fatalf("expected overview, got %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("expected bearer token forwarded, got %q", gotAuth)
	}
	if ov.NetSavings != 3000 {
		t.Errorf("expected net savings 3000, got %v", ov.NetSavings)
	}
	if ov.Categories["grocery"] != 500 {
		t.Errorf("expected grocery 500, got %v", ov.Categories["grocery"])
	}
	if len(ov.MonthlyTrend) != 1 || ov.MonthlyTrend[0].Month != "2026-08" {
		t.Errorf("unexpected trend %v", ov.MonthlyTrend)
	}
}

func TestListGoals_ParsesDates(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "g1", "name": "Emergency fund", "target_amount": 5000,
			 "current_amount": 3200, "deadline": "2026-12-31", "is_active": true}
		]`))
	}))

	goals, err := c.ListGoals(authedCtx())
	if err != nil {
		t.Fatalf("expected goals, got %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	want := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	if !goals[0].Deadline.Equal(want) {
		t.Errorf("expected deadline %v, got %v", want, goals[0].Deadline)
	}
}

func TestMarkAlertsRead_FullBatchSucceeds(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Marked 2 alerts as read", "count": 2}`))
	}))

	if err := c.MarkAlertsRead(authedCtx(), []string{"a", "b"}); err != nil {
		t.Fatalf("expected full batch to succeed, got %v", err)
	}
}

func TestMarkAlertsRead_PartialIsError(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Marked 1 alerts as read", "count": 1}`))
	}))

	err := c.MarkAlertsRead(authedCtx(), []string{"a", "b"})
	if err == nil {
		t.Fatal("expected error when backend marks fewer alerts than requested")
	}
	var extErr *domain.ErrExternalService
	if !errors.As(err, &extErr) {
		t.Errorf("expected ErrExternalService, got %T", err)
	}
}

func TestMarkAlertsRead_EmptyBatchSkipsNetwork(t *testing.T) {
	called := false
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	if err := c.MarkAlertsRead(authedCtx(), nil); err != nil {
		t.Fatalf("expected nil error for empty batch, got %v", err)
	}
	if called {
		t.Error("expected no request for an empty batch")
	}
}

func TestListRecurringCharges_DecodesMerchant(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "s1", "merchant": "Netflix", "average_amount": 15.99,
			 "frequency_days": 30, "is_active": true, "confidence_score": 0.95}
		]`))
	}))

	charges, err := c.ListRecurringCharges(authedCtx())
	if err != nil {
		t.Fatalf("expected charges, got %v", err)
	}
	if len(charges) != 1 || charges[0].Merchant != "Netflix" {
		t.Errorf("expected merchant Netflix, got %+v", charges)
	}
}

func TestListAlerts_DecodesType(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "a1", "type": "BUDGET_WARNING", "title": "Budget warning", "is_read": false}
		]`))
	}))

	alerts, err := c.ListAlerts(authedCtx(), false, 0)
	if err != nil {
		t.Fatalf("expected alerts, got %v", err)
	}
	if len(alerts) != 1 || alerts[0].Type != "BUDGET_WARNING" {
		t.Errorf("expected type BUDGET_WARNING, got %+v", alerts)
	}
}

func TestUpdateGoalProgress_PostsAmountQuery(t *testing.T) {
	var gotMethod, gotAmount string
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAmount = r.URL.Query().Get("amount")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Added $250.00 to goal", "current_amount": 3450, "target_amount": 5000}`))
	}))

	goal, err := c.UpdateGoalProgress(authedCtx(), "g1", 250)
	if err != nil {
		t.Fatalf("expected progress update, got %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotAmount != "250" {
		t.Errorf("expected amount=250 query, got %q", gotAmount)
	}
	if goal.CurrentAmount != 3450 || goal.TargetAmount != 5000 {
		t.Errorf("unexpected goal totals %+v", goal)
	}
	if goal.ID != "g1" {
		t.Errorf("expected goal id g1, got %q", goal.ID)
	}
}

func TestDoRequest_NotFound(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetSpendOverview(authedCtx())
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDoRequest_Unauthorized(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.ListAlerts(authedCtx(), false, 0)
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDoRequest_ServerErrorWrapped(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := c.ListRecurringCharges(authedCtx())
	var extErr *domain.ErrExternalService
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
}

func TestBackendErrorIncrementsCounter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	metrics := observability.NewMetrics()
	cfg := resilience.Config{MaxRetries: 0, InitialBackoff: 5 * time.Millisecond, MaxConcurrency: 4}
	c := financeapi.New(srv.Client(), srv.URL, cfg, metrics, zap.NewNop())

	if _, err := c.GetSpendOverview(authedCtx()); err == nil {
		t.Fatal("expected error from 502 backend")
	}
	if got := metrics.GetSummary().BackendErrors; got != 1 {
		t.Errorf("expected 1 backend error counted, got %d", got)
	}
}

func TestMutation_SendsIdempotencyKey(t *testing.T) {
	var key string
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get("X-Idempotency-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "b1", "amount_monthly": 500}`))
	}))

	_, err := c.CreateBudget(authedCtx(), &domain.BudgetCreateRequest{
		Category:      "grocery",
		AmountMonthly: 500,
	})
	if err != nil {
		t.Fatalf("expected budget created, got %v", err)
	}
	if key == "" {
		t.Error("expected X-Idempotency-Key header on mutation")
	}
}
