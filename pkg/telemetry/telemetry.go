package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/d2dtabu/engine/pkg/driver"

// NewProvider builds an in-process TracerProvider (always-on sampler, no
// span exporter) and installs it as the global provider.
func NewProvider() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
	otel.SetTracerProvider(tp)
	return tp
}

func tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartIteration opens a span covering one driver iteration. runID is the
// per-run correlation id (see pkg/driver.Run), attached to the span so
// every iteration across a run can be grouped in a trace backend.
func StartIteration(ctx context.Context, runID string, iteration int) (context.Context, trace.Span) {
	return tracer().Start(ctx, "driver.iteration", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.Int("iteration", iteration),
	))
}

// StartBatch opens a span covering one neighborhood's move-evaluation
// batch against a single parent Solution.
func StartBatch(ctx context.Context, neighborhood string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "neighborhood.evaluate", trace.WithAttributes(
		attribute.String("neighborhood", neighborhood),
	))
}
