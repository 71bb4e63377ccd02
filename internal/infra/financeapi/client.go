// Package financeapi is the REST adapter for the finance backend.
// It implements port.FinanceStore with per-request auth forwarding,
// retry, circuit breaking, and bulkhead isolation on every call.
package financeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/auth"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/observability"
	"github.com/mlehnert/pf-dashboard-bff-go/internal/infra/resilience"
)

var tracer = otel.Tracer("financeapi")

// Client wraps HTTP calls to the finance backend API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	guard      *resilience.Guard
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// New creates a finance API client. All calls share one circuit breaker
// and one bulkhead; the backend is a single failure domain.
func New(httpClient *http.Client, baseURL string, cfg resilience.Config, metrics *observability.Metrics, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		guard:      resilience.NewGuard("finance-api", cfg),
		metrics:    metrics,
		logger:     logger,
	}
}

// doRequest executes one authenticated request against the backend.
// The bearer token travels in the request context, put there by the
// auth middleware; there is no client-level credential state.
func (c *Client) doRequest(ctx context.Context, method, path string, payload any, idemKey string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok, ok := auth.TokenFrom(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if idemKey != "" {
		req.Header.Set("X-Idempotency-Key", idemKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("finance API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &domain.ErrUnauthorized{Message: "finance API rejected token"}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &domain.ErrNotFound{Resource: path, ID: ""}
	case resp.StatusCode == http.StatusNoContent:
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Warn("finance API non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(raw)),
		)
		return nil, fmt.Errorf("finance API returned status %d: %s", resp.StatusCode, string(raw))
	}

	c.logger.Debug("finance API request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return raw, nil
}

// call runs doRequest under the resilience guard and decodes the body
// into out (when out is non-nil and the body is non-empty). Mutations get
// one idempotency key for all retry attempts, so a retried request that
// already landed is not applied twice.
func (c *Client) call(ctx context.Context, endpoint, method, path string, payload, out any) error {
	var idemKey string
	if method != http.MethodGet {
		idemKey = uuid.NewString()
	}

	err := c.guard.Execute(ctx, func() error {
		raw, err := c.doRequest(ctx, method, path, payload, idemKey)
		if err != nil {
			return err
		}
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s response: %w", endpoint, err)
		}
		return nil
	})
	if err != nil {
		c.metrics.IncrBackendError(endpoint)
		return wrapErr(endpoint, err)
	}
	return nil
}

// wrapErr normalizes guard failures into domain errors, preserving
// typed errors the request loop already produced.
func wrapErr(endpoint string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &domain.ErrCircuitOpen{Service: "finance-api"}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.ErrTimeout{Operation: endpoint}
	}

	var notFound *domain.ErrNotFound
	var unauthorized *domain.ErrUnauthorized
	if errors.As(err, &notFound) || errors.As(err, &unauthorized) {
		return err
	}

	return &domain.ErrExternalService{Service: "finance-api/" + endpoint, Err: err}
}
