package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StorefrontTelemetry provides telemetry for the storefront API endpoints.
type StorefrontTelemetry struct {
	meter metric.Meter

	requestCounter    metric.Int64Counter
	errorCounter      metric.Int64Counter
	durationHistogram metric.Float64Histogram

	// Domain-specific counters
	checkoutCounter metric.Int64Counter
	streamCounter   metric.Int64Counter
}

// RequestMetrics contains the telemetry data for one request.
type RequestMetrics struct {
	Method       string
	Endpoint     string
	StatusCode   int
	Duration     time.Duration
	ErrorMessage string
}

// NewStorefrontTelemetry creates an uninitialized telemetry instance.
func NewStorefrontTelemetry() *StorefrontTelemetry {
	return &StorefrontTelemetry{}
}

// InitializeTelemetry sets up all the telemetry instruments for the API.
func (t *StorefrontTelemetry) InitializeTelemetry(ctx context.Context) error {
	slog.Info("Initializing storefront API telemetry")

	t.meter = otel.Meter("storefront-api")

	var err error

	t.requestCounter, err = t.meter.Int64Counter(
		"storefront_api_requests_total",
		metric.WithDescription("Total number of API requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create request counter: %w", err)
	}

	t.errorCounter, err = t.meter.Int64Counter(
		"storefront_api_errors_total",
		metric.WithDescription("Total number of API errors"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create error counter: %w", err)
	}

	t.durationHistogram, err = t.meter.Float64Histogram(
		"storefront_api_request_duration_seconds",
		metric.WithDescription("Duration of API requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create duration histogram: %w", err)
	}

	t.checkoutCounter, err = t.meter.Int64Counter(
		"storefront_checkouts_total",
		metric.WithDescription("Total number of completed checkout requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create checkout counter: %w", err)
	}

	t.streamCounter, err = t.meter.Int64Counter(
		"storefront_stream_connections_total",
		metric.WithDescription("Total number of live-update stream connections"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create stream counter: %w", err)
	}

	slog.Info("Storefront API telemetry initialized successfully")
	return nil
}

// RegisterRequestReceived records a successful API request.
func (t *StorefrontTelemetry) RegisterRequestReceived(ctx context.Context, m RequestMetrics) {
	if t.requestCounter == nil {
		return
	}

	// Low-cardinality attributes only to prevent metric explosion
	attrs := []attribute.KeyValue{
		attribute.String("method", m.Method),
		attribute.String("endpoint", m.Endpoint),
		attribute.Int("status_code", m.StatusCode),
	}
	t.requestCounter.Add(ctx, 1, metric.WithAttributes(attrs...))

	t.recordEndpointSpecificMetrics(ctx, m)
}

// RegisterRequestError records a failed API request.
func (t *StorefrontTelemetry) RegisterRequestError(ctx context.Context, m RequestMetrics) {
	if t.errorCounter == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("method", m.Method),
		attribute.String("endpoint", m.Endpoint),
		attribute.Int("status_code", m.StatusCode),
		attribute.String("error_type", categorizeError(m.ErrorMessage)),
	}
	t.errorCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RegisterRequestDuration records the duration of an API request.
func (t *StorefrontTelemetry) RegisterRequestDuration(ctx context.Context, m RequestMetrics) {
	if t.durationHistogram == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("method", m.Method),
		attribute.String("endpoint", m.Endpoint),
		attribute.Int("status_code", m.StatusCode),
	}
	t.durationHistogram.Record(ctx, m.Duration.Seconds(), metric.WithAttributes(attrs...))
}

func (t *StorefrontTelemetry) recordEndpointSpecificMetrics(ctx context.Context, m RequestMetrics) {
	switch m.Endpoint {
	case "/api/checkout":
		if t.checkoutCounter != nil {
			t.checkoutCounter.Add(ctx, 1)
		}
	case "/api/stream":
		if t.streamCounter != nil {
			t.streamCounter.Add(ctx, 1)
		}
	}
}

// categorizeError groups similar errors to keep cardinality low.
func categorizeError(errorMessage string) string {
	switch {
	case errorMessage == "":
		return "unknown"
	case strings.Contains(errorMessage, "not found"):
		return "not_found"
	case strings.Contains(errorMessage, "validation"):
		return "validation"
	case strings.Contains(errorMessage, "conflict"):
		return "conflict"
	case strings.Contains(errorMessage, "unauthorized"):
		return "unauthorized"
	case strings.Contains(errorMessage, "forbidden"):
		return "forbidden"
	case strings.Contains(errorMessage, "internal"):
		return "internal_error"
	case strings.Contains(errorMessage, "bad request"):
		return "bad_request"
	default:
		return "other"
	}
}

// GetEndpointFromPath normalizes a request path to its route template so
// ids do not blow up metric cardinality.
func GetEndpointFromPath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/products/"):
		return "/api/products/{id}"
	case strings.HasPrefix(path, "/api/clients/"):
		return "/api/clients/{id}"
	case strings.HasPrefix(path, "/api/admin/backups"):
		return path
	default:
		return path
	}
}
