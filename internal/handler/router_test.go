package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/config"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/handler"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/cache"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/observability"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/service"
)

const testSecret = "test-secret"

// --- Store stub ---

type stubStore struct {
	overview *domain.SpendOverview
	usage    []domain.BudgetUsage
	goals    []domain.Goal
	charges  []domain.RecurringCharge
	alerts   []domain.Alert
	marked   [][]string
}

func (s *stubStore) GetSpendOverview(context.Context) (*domain.SpendOverview, error) {
	return s.overview, nil
}
func (s *stubStore) ListBudgetUsage(context.Context) ([]domain.BudgetUsage, error) {
	return s.usage, nil
}
func (s *stubStore) CreateBudget(_ context.Context, req *domain.BudgetCreateRequest) (*domain.Budget, error) {
	return &domain.Budget{ID: "b1", Category: req.Category, AmountMonthly: req.AmountMonthly}, nil
}
func (s *stubStore) UpdateBudget(_ context.Context, id string, req *domain.BudgetCreateRequest) (*domain.Budget, error) {
	return &domain.Budget{ID: id, Category: req.Category, AmountMonthly: req.AmountMonthly}, nil
}
func (s *stubStore) DeleteBudget(context.Context, string) error { return nil }
func (s *stubStore) ListGoals(context.Context) ([]domain.Goal, error) {
	return s.goals, nil
}
func (s *stubStore) CreateGoal(_ context.Context, req *domain.GoalCreateRequest) (*domain.Goal, error) {
	return &domain.Goal{ID: "g1", Name: req.Name, TargetAmount: req.TargetAmount}, nil
}
func (s *stubStore) UpdateGoal(_ context.Context, id string, req *domain.GoalCreateRequest) (*domain.Goal, error) {
	return &domain.Goal{ID: id, Name: req.Name, TargetAmount: req.TargetAmount}, nil
}
func (s *stubStore) UpdateGoalProgress(_ context.Context, id string, amount float64) (*domain.Goal, error) {
	return &domain.Goal{ID: id, CurrentAmount: amount, TargetAmount: 1000}, nil
}
func (s *stubStore) DeleteGoal(context.Context, string) error { return nil }
func (s *stubStore) ListRecurringCharges(context.Context) ([]domain.RecurringCharge, error) {
	return s.charges, nil
}
func (s *stubStore) GetGrayCharges(context.Context) (*domain.GrayChargeReport, error) {
	return &domain.GrayChargeReport{}, nil
}
func (s *stubStore) ListAlerts(context.Context, bool, int) ([]domain.Alert, error) {
	return s.alerts, nil
}
func (s *stubStore) MarkAlertsRead(_ context.Context, ids []string) error {
	s.marked = append(s.marked, ids)
	return nil
}
func (s *stubStore) GenerateAlerts(context.Context) (*domain.GenerateResult, error) {
	return &domain.GenerateResult{Message: "ok", TotalAlerts: len(s.alerts)}, nil
}

// --- Helpers ---

func newTestRouter(store *stubStore) http.Handler {
	cfg := &config.Config{
		JWTSecret:     testSecret,
		AllowedOrigin: "http://localhost:3000",
	}
	metrics := observability.NewMetrics()
	logger := zap.NewNop()

	dashSvc := service.NewDashboardService(
		store, cache.New[*domain.SpendOverview](time.Minute), metrics, logger,
	)
	alertSvc := service.NewAlertService(
		store, cache.New[bool](30*time.Second), metrics, logger,
	)
	return handler.NewRouter(cfg, dashSvc, alertSvc, metrics, logger)
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func defaultStore() *stubStore {
	return &stubStore{
		overview: &domain.SpendOverview{
			TotalExpenses: 1000,
			Categories: map[string]float64{
				"grocery":    500,
				"restaurant": 300,
				"utilities":  90,
				"shopping":   80,
				"fitness":    30,
			},
		},
		alerts: []domain.Alert{
			{ID: "a1", Type: domain.AlertBudgetWarning, IsRead: false},
			{ID: "a2", Type: domain.AlertGoalProgress, IsRead: true},
		},
	}
}

// --- Tests ---

func TestHealthz(t *testing.T) {
	rec := doRequest(t, newTestRouter(defaultStore()), http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	rec := doRequest(t, newTestRouter(defaultStore()), http.MethodGet, "/readyz", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rec := doRequest(t, newTestRouter(defaultStore()), http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsSummary_CountsRequests(t *testing.T) {
	router := newTestRouter(defaultStore())
	token := signToken(t, "user-1")

	doRequest(t, router, http.MethodGet, "/v1/spending/overview", token, "")
	doRequest(t, router, http.MethodGet, "/v1/alerts", token, "")

	rec := doRequest(t, router, http.MethodGet, "/v1/metrics/summary", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var summary domain.MetricsSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if summary.TotalRequests < 2 {
		t.Errorf("expected at least 2 requests counted, got %d", summary.TotalRequests)
	}
	if summary.ErrorRate != 0 {
		t.Errorf("expected zero error rate for successful requests, got %v", summary.ErrorRate)
	}
}

func TestV1_RequiresToken(t *testing.T) {
	router := newTestRouter(defaultStore())

	rec := doRequest(t, router, http.MethodGet, "/v1/spending/overview", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/spending/overview", "not-a-jwt", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with garbage token, got %d", rec.Code)
	}
}

func TestV1_WrongSecretRejected(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, _ := tok.SignedString([]byte("other-secret"))

	rec := doRequest(t, newTestRouter(defaultStore()), http.MethodGet, "/v1/spending/overview", signed, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for foreign signature, got %d", rec.Code)
	}
}

func TestSpendingBreakdown_Overview(t *testing.T) {
	router := newTestRouter(defaultStore())
	token := signToken(t, "u1")

	rec := doRequest(t, router, http.MethodGet, "/v1/spending/breakdown", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view domain.BreakdownView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode breakdown: %v", err)
	}
	if view.Mode != domain.BreakdownOverview {
		t.Errorf("expected overview mode, got %s", view.Mode)
	}
	if len(view.Major) != 3 {
		t.Errorf("expected grocery, restaurant, Other; got %v", view.Major)
	}
}

func TestSpendingBreakdown_OtherDetail(t *testing.T) {
	router := newTestRouter(defaultStore())
	token := signToken(t, "u1")

	rec := doRequest(t, router, http.MethodGet, "/v1/spending/breakdown?view=other", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var view domain.BreakdownView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode breakdown: %v", err)
	}
	if view.Mode != domain.BreakdownOtherDetail {
		t.Errorf("expected other_detail mode, got %s", view.Mode)
	}
	if len(view.OtherDetail) != 3 {
		t.Errorf("expected 3 drilled-in rows, got %d", len(view.OtherDetail))
	}
}

func TestCreateGoal_ValidationReturns400(t *testing.T) {
	router := newTestRouter(defaultStore())
	token := signToken(t, "u1")

	rec := doRequest(t, router, http.MethodPost, "/v1/goals", token, `{"name": "", "target_amount": 100}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty name, got %d", rec.Code)
	}
}

func TestAlertsFlow(t *testing.T) {
	store := defaultStore()
	router := newTestRouter(store)
	token := signToken(t, "u1")

	rec := doRequest(t, router, http.MethodGet, "/v1/alerts", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view domain.AlertListView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode alerts: %v", err)
	}
	if view.UnreadCount != 1 {
		t.Errorf("expected 1 unread, got %d", view.UnreadCount)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/alerts/a1/select", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on select, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/alerts/mark-read", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on mark-read, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.marked) != 1 || len(store.marked[0]) != 1 || store.marked[0][0] != "a1" {
		t.Errorf("expected selection submitted, got %v", store.marked)
	}
}

func TestAlertsMarkRead_NothingSelected(t *testing.T) {
	router := newTestRouter(defaultStore())
	token := signToken(t, "u1")

	rec := doRequest(t, router, http.MethodPost, "/v1/alerts/mark-read", token, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty selection, got %d", rec.Code)
	}
}
