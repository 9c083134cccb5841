package otelfault

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/strata-repo/fault"
)

// Metrics holds the repository fault instruments.
type Metrics struct {
	meter metric.Meter

	OperationsTotal   metric.Int64Counter
	OperationDuration metric.Float64Histogram
	FaultsTotal       metric.Int64Counter
}

// NewMetrics creates and registers the repository instruments.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{meter: meter}

	var err error

	m.OperationsTotal, err = meter.Int64Counter(
		"repository.operations.total",
		metric.WithDescription("Total number of repository operations"),
		metric.WithUnit("{operations}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating repository_operations_total: %w", err)
	}

	m.OperationDuration, err = meter.Float64Histogram(
		"repository.operation.duration",
		metric.WithDescription("Repository operation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating repository_operation_duration: %w", err)
	}

	m.FaultsTotal, err = meter.Int64Counter(
		"repository.faults.total",
		metric.WithDescription("Total number of repository faults by kind"),
		metric.WithUnit("{faults}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating repository_faults_total: %w", err)
	}

	return m, nil
}

// RecordOperation records one repository operation. A non-nil err also
// counts toward the fault counter, labeled with its kind.
func (m *Metrics) RecordOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}

	m.OperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.OperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))

	if err != nil {
		m.RecordFault(ctx, operation, err)
	}
}

// RecordFault counts one fault, labeled with the operation that produced
// it, its kind, and whether retrying may help.
func (m *Metrics) RecordFault(ctx context.Context, operation string, err error) {
	m.FaultsTotal.Add(ctx, 1, metric.WithAttributes(faultAttrs(operation, err)...))
}

func faultAttrs(operation string, err error) []attribute.KeyValue {
	kind := fault.KindOf(err)
	if kind == "" {
		kind = fault.KindInternal
	}

	return []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.String("fault.kind", kind.String()),
		attribute.Bool("fault.transient", fault.Transient(err)),
	}
}
