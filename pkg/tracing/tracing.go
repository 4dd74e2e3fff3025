// Package tracing configures the global OpenTelemetry tracer provider used by
// the evolution loop.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"k8s.io/klog/v2"

	"github.com/vlsi-lab/floorplanner/pkg/version"
)

const DefaultServiceName = "floorplanner"

// ShutdownFunc flushes pending spans and releases the exporter
type ShutdownFunc func(ctx context.Context) error

// Options selects where spans are sent
type Options struct {
	// Endpoint is the OTLP/gRPC collector address. Tracing is disabled when
	// it is empty and no Exporter is set.
	Endpoint    string
	Insecure    bool
	ServiceName string
	// SampleRate is the fraction of root spans sampled, in [0, 1]
	SampleRate float64
	// Exporter replaces the OTLP exporter
	Exporter sdktrace.SpanExporter
}

// Setup installs a batching tracer provider as the global provider. With
// tracing disabled the global no-op provider is kept and the returned
// ShutdownFunc does nothing.
func Setup(ctx context.Context, opts Options) (ShutdownFunc, error) {
	logger := klog.FromContext(ctx)
	noop := func(context.Context) error { return nil }

	exporter := opts.Exporter
	if exporter == nil {
		if opts.Endpoint == "" {
			logger.V(2).Info("Tracing disabled, no collector endpoint configured")
			return noop, nil
		}
		clientOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(opts.Endpoint)}
		if opts.Insecure {
			clientOpts = append(clientOpts, otlptracegrpc.WithInsecure())
		}
		var err error
		exporter, err = otlptracegrpc.New(ctx, clientOpts...)
		if err != nil {
			return noop, fmt.Errorf("creating OTLP trace exporter: %w", err)
		}
	}
	if opts.SampleRate < 0 || opts.SampleRate > 1 {
		return noop, fmt.Errorf("sample rate must be in [0, 1], got %v", opts.SampleRate)
	}

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName), semconv.ServiceVersionKey.String(version.Get().GitVersion)),
		resource.WithHost())
	if err != nil {
		return noop, fmt.Errorf("creating trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRate))),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	logger.Info("Tracing enabled", "endpoint", opts.Endpoint, "service", serviceName, "sampleRate", opts.SampleRate)

	return provider.Shutdown, nil
}
