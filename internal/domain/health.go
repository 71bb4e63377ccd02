package domain

// ServiceHealth describes one dependency's health probe result.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"` // healthy, degraded, unhealthy
	LatencyMs   int64  `json:"latency_ms"`
	LastChecked string `json:"last_checked"`
}

// HealthStatus is the aggregate /healthz response.
type HealthStatus struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
}

// MetricsSummary is a point-in-time snapshot of request counters for the
// GET /v1/metrics/summary endpoint.
type MetricsSummary struct {
	TotalRequests  int64   `json:"total_requests"`
	ErrorRate      float64 `json:"error_rate"`
	CacheHitRate   float64 `json:"cache_hit_rate"`
	BackendErrors  int64   `json:"backend_errors"`
	AlertsMarked   int64   `json:"alerts_marked_read"`
	AlertGenerates int64   `json:"alert_generate_calls"`
	Period         string  `json:"period"`
}
