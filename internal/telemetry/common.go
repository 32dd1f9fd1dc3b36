package telemetry

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	api "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Telemetry owns the OpenTelemetry meter provider and, in scraper mode, the
// HTTP server exposing the Prometheus endpoint.
type Telemetry struct {
	server   *http.Server
	Provider *metric.MeterProvider
	meter    api.Meter
	ctx      *context.Context
}

var once sync.Once

// InitMetrics configures the metrics exporter once. The default is a
// Prometheus scrape endpoint on :9080/metrics; setting METRICS_EXPORTER=otlp
// pushes over gRPC to OTEL_EXPORTER_OTLP_METRICS_ENDPOINT instead.
func (t *Telemetry) InitMetrics(meterName string, ctx *context.Context) *Telemetry {
	exporterKind := os.Getenv("METRICS_EXPORTER")
	t.ctx = ctx

	once.Do(func() {
		if exporterKind == "otlp" {
			slog.Info("Starting metrics with OTLP gRPC exporter")
			t.initGRPCMetrics(meterName)
		} else {
			slog.Info("Starting metrics with Prometheus scrape exporter")
			t.initScrapeMetrics(meterName)
		}
	})
	return t
}

// Close flushes pending metrics and stops the scrape server if one is running.
func (t *Telemetry) Close() {
	if t.Provider != nil {
		t.Provider.ForceFlush(*t.ctx)
	}
	if t.server != nil {
		_ = t.server.Shutdown(*t.ctx)
		slog.Info("Shutting down metrics server")
	}
}

func (t *Telemetry) initGRPCMetrics(meterName string) {
	// Endpoint comes from OTEL_EXPORTER_OTLP_METRICS_ENDPOINT, defaulting
	// to localhost:4317.
	exporter, err := otlpmetricgrpc.New(*t.ctx)
	if err != nil {
		slog.Error("Creating gRPC metrics exporter", "error", err)
		return
	}

	t.Provider = metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(exporter)))
	otel.SetMeterProvider(t.Provider)
	t.meter = t.Provider.Meter(meterName)
}

func (t *Telemetry) initScrapeMetrics(meterName string) {
	// The exporter embeds a default OpenTelemetry Reader and implements
	// prometheus.Collector, so it serves as both.
	exporter, err := prometheus.New()
	if err != nil {
		slog.Error("Creating Prometheus scrape exporter", "error", err)
		return
	}

	t.Provider = metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(t.Provider)
	t.meter = t.Provider.Meter(meterName)

	go t.serveMetrics()
}

func (t *Telemetry) serveMetrics() {
	addr := ":" + envWithDefault("METRICS_PORT", "9080")
	slog.Info("Serving metrics", "addr", addr+"/metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	t.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	if err := t.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Metrics server exited", "error", err)
	}
}

func envWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
