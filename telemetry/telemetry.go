// Package telemetry wires OpenTelemetry tracing for dialogue sessions.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "townfolk"
	serviceVersion = "0.1.0"
)

// Setup installs an OTLP HTTP trace exporter as the global provider. The
// exporter reads the standard OTEL_EXPORTER_OTLP_* variables.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("telemetry: exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

// ConfigureHoneycombEnv maps HONEYCOMB_API_KEY and HONEYCOMB_DATASET onto the
// OTLP variables when they are not already set.
func ConfigureHoneycombEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_API_KEY")
	if apiKey == "" {
		return false
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	dataset := os.Getenv("HONEYCOMB_DATASET")
	if dataset == "" {
		dataset = serviceName
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_HEADERS") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
	return true
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}

// LinesRead returns the counter of dialogue lines surfaced to the player.
// Without a meter provider installed it records nothing.
func LinesRead() metric.Int64Counter {
	c, err := otel.Meter(serviceName).Int64Counter("dialogue_lines_read",
		metric.WithDescription("Dialogue lines shown to the player"))
	if err != nil {
		return nil
	}
	return c
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
