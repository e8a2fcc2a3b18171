package telemetry

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all custom metrics for the gateway.
// A nil *Metrics is safe to call; recording becomes a no-op.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	// Backend client metrics
	BackendCallsTotal  metric.Int64Counter
	BackendDurationMs  metric.Float64Histogram

	// Cache metrics
	CacheRefreshTotal metric.Int64Counter

	// Booking metrics
	BookingConflictsTotal metric.Int64Counter

	// Auth metrics
	AuthFailuresTotal metric.Int64Counter
}

// InitMetrics initializes all custom metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/ccsfp-clinic/clinic-gateway")

	// HTTP request counter
	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	// HTTP duration histogram
	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	// Backend call counter
	backendCallsTotal, err := meter.Int64Counter(
		"backend_calls_total",
		metric.WithDescription("Total number of clinic backend calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	// Backend call duration histogram
	backendDurationMs, err := meter.Float64Histogram(
		"backend_call_duration_milliseconds",
		metric.WithDescription("Clinic backend call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	// Cache refresh counter
	cacheRefreshTotal, err := meter.Int64Counter(
		"cache_refresh_total",
		metric.WithDescription("Total number of display cache refreshes"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, err
	}

	// Booking conflict counter
	bookingConflictsTotal, err := meter.Int64Counter(
		"booking_conflicts_total",
		metric.WithDescription("Total number of rejected double bookings"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, err
	}

	// Auth failures counter
	authFailuresTotal, err := meter.Int64Counter(
		"auth_failures_total",
		metric.WithDescription("Total number of authentication failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	log.Println("✓ Custom metrics initialized")

	return &Metrics{
		HTTPRequestsTotal:     httpRequestsTotal,
		HTTPDurationMs:        httpDurationMs,
		BackendCallsTotal:     backendCallsTotal,
		BackendDurationMs:     backendDurationMs,
		CacheRefreshTotal:     cacheRefreshTotal,
		BookingConflictsTotal: bookingConflictsTotal,
		AuthFailuresTotal:     authFailuresTotal,
	}, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordBackendCall records a clinic backend call metric
func (m *Metrics) RecordBackendCall(ctx context.Context, method, path string, statusCode int, durationMs float64) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("backend_path", path),
		attribute.Int("http_status_code", statusCode),
	}

	m.BackendCallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.BackendDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordCacheRefresh records a display cache refresh metric
func (m *Metrics) RecordCacheRefresh(ctx context.Context, resource string, stale bool) {
	if m == nil {
		return
	}
	m.CacheRefreshTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("resource", resource),
		attribute.Bool("stale_discarded", stale),
	))
}

// RecordBookingConflict records a rejected double booking metric
func (m *Metrics) RecordBookingConflict(ctx context.Context, nurse string) {
	if m == nil {
		return
	}
	m.BookingConflictsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("nurse", nurse),
	))
}

// RecordAuthFailure records an authentication failure metric
func (m *Metrics) RecordAuthFailure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.AuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}
