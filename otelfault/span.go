package otelfault

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/strata-repo/fault"
)

// RecordSpanError marks the span in ctx as failed and attaches the fault
// kind to the recorded exception event. It is a no-op for nil errors and
// for non-recording spans.
func RecordSpanError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	kind := fault.KindOf(err)
	if kind == "" {
		kind = fault.KindInternal
	}

	span.RecordError(err, trace.WithAttributes(
		attribute.String("fault.kind", kind.String()),
		attribute.Bool("fault.transient", fault.Transient(err)),
	))
	span.SetStatus(codes.Error, err.Error())
}
