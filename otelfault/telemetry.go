package otelfault

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// ServiceName is the fallback service name reported to observability backends
	ServiceName = "strata-repo"
)

// Telemetry bundles the OpenTelemetry providers a repository component
// needs to report fault metrics.
type Telemetry struct {
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	Metrics        *Metrics
}

// NewTelemetry initializes metrics over the Prometheus exporter and
// registers the providers globally. Tracing stays on the noop provider;
// RecordSpanError picks up whatever tracer the host application installs.
func NewTelemetry(serviceName, serviceVersion string) (*Telemetry, error) {
	if serviceName == "" {
		serviceName = ServiceName
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	metrics, err := NewMetrics(meterProvider.Meter(serviceName))
	if err != nil {
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	tracerProvider := noop.NewTracerProvider()
	otel.SetTracerProvider(tracerProvider)

	return &Telemetry{
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
		Metrics:        metrics,
	}, nil
}

// Shutdown flushes and stops the meter provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if mp, ok := t.MeterProvider.(*sdkmetric.MeterProvider); ok {
		if err := mp.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutting down meter provider: %w", err)
		}
	}
	return nil
}

// NewMetricsHandler returns the /metrics endpoint serving the Prometheus
// exposition. Non-GET requests get 405.
func NewMetricsHandler() http.Handler {
	exposition := promhttp.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		exposition.ServeHTTP(w, r)
	})
}
