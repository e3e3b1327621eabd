// Package telemetry provides the engine's go.opentelemetry.io/otel
// tracing: one span per driver iteration and one span per neighborhood
// evaluation batch. Only otel/sdk's in-process tracer provider is wired;
// no OTLP exporter is configured since there is no collector endpoint in
// this engine's deployment shape.
package telemetry
