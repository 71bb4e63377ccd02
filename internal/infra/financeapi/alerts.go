package financeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
)

// wireAlert maps the backend's alert payload.
type wireAlert struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	IsRead      bool           `json:"is_read"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   string         `json:"created_at"`
}

func (w wireAlert) toDomain() domain.Alert {
	return domain.Alert{
		ID:          w.ID,
		Type:        w.Type,
		Title:       w.Title,
		Description: w.Description,
		IsRead:      w.IsRead,
		Metadata:    w.Metadata,
		CreatedAt:   parseDate(w.CreatedAt),
	}
}

// ListAlerts fetches alerts newest-first. limit <= 0 means backend default.
func (c *Client) ListAlerts(ctx context.Context, unreadOnly bool, limit int) ([]domain.Alert, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ListAlerts")
	defer span.End()
	span.SetAttributes(attribute.Bool("alerts.unread_only", unreadOnly))

	q := url.Values{}
	if unreadOnly {
		q.Set("unread_only", "true")
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/alerts/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var rows []wireAlert
	if err := c.call(ctx, "alerts", http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}

	alerts := make([]domain.Alert, 0, len(rows))
	for _, r := range rows {
		alerts = append(alerts, r.toDomain())
	}
	return alerts, nil
}

// MarkAlertsRead marks the given alert IDs as read. The backend applies
// the batch atomically; partial application is treated as a failure.
func (c *Client) MarkAlertsRead(ctx context.Context, ids []string) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.MarkAlertsRead")
	defer span.End()
	span.SetAttributes(attribute.Int("alerts.count", len(ids)))

	if len(ids) == 0 {
		return nil
	}

	payload := domain.MarkReadRequest{IDs: ids}

	var resp struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}
	if err := c.call(ctx, "alerts-mark-read", http.MethodPost, "/api/alerts/mark-read", payload, &resp); err != nil {
		return err
	}
	if resp.Count != len(ids) {
		return &domain.ErrExternalService{
			Service: "finance-api/alerts-mark-read",
			Err:     fmt.Errorf("backend marked %d of %d alerts", resp.Count, len(ids)),
		}
	}
	return nil
}

// GenerateAlerts asks the backend to run its alert generation pass.
func (c *Client) GenerateAlerts(ctx context.Context) (*domain.GenerateResult, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.GenerateAlerts")
	defer span.End()

	var result domain.GenerateResult
	if err := c.call(ctx, "alerts-generate", http.MethodPost, "/api/alerts/generate", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
