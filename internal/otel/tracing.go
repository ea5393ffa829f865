package otel

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// DefaultServiceName is reported when OTEL_SERVICE_NAME is unset.
const DefaultServiceName = "claimsapi"

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Init installs a global tracer provider exporting over OTLP and the W3C
// propagators. Exporter failures degrade to the no-op provider so the API
// keeps serving without traces.
func Init(ctx context.Context, log *slog.Logger) (ShutdownFunc, error) {
	setPropagator()

	if os.Getenv("OTEL_SDK_DISABLED") == "true" {
		log.Info("tracing_configured", "tracing_enabled", false)
		return noopShutdown, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(getEnv("OTEL_SERVICE_NAME", DefaultServiceName)),
		),
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	protocol := getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	exporter, err := newExporter(ctx, protocol)
	if err != nil {
		log.Error("tracing_init_failed", "error", err.Error())
		return noopShutdown, nil
	}

	samplerType := getEnv("OTEL_TRACES_SAMPLER", "parentbased_traceidratio")
	samplerArg := getEnv("OTEL_TRACES_SAMPLER_ARG", "1.0")

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(Sampler(samplerType, samplerArg)),
	)
	otel.SetTracerProvider(tp)

	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT")
	if endpoint == "" {
		endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	log.Info("tracing_configured",
		"tracing_enabled", true,
		"otlp_protocol", protocol,
		"otlp_endpoint", endpoint,
		"sampler", samplerType,
		"sampler_arg", samplerArg,
	)

	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, protocol string) (*otlptrace.Exporter, error) {
	switch protocol {
	case "grpc":
		return otlptracegrpc.New(ctx)
	case "http/protobuf":
		return otlptracehttp.New(ctx)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol: %s", protocol)
	}
}

func setPropagator() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// Sampler maps the OTEL_TRACES_SAMPLER names onto SDK samplers.
// Unknown names fall back to parent-based always-on.
func Sampler(name, arg string) trace.Sampler {
	ratio := 1.0
	if v, err := strconv.ParseFloat(arg, 64); err == nil {
		ratio = v
	}

	switch name {
	case "always_on":
		return trace.AlwaysSample()
	case "always_off":
		return trace.NeverSample()
	case "traceidratio":
		return trace.TraceIDRatioBased(ratio)
	case "parentbased_always_on":
		return trace.ParentBased(trace.AlwaysSample())
	case "parentbased_always_off":
		return trace.ParentBased(trace.NeverSample())
	case "parentbased_traceidratio":
		return trace.ParentBased(trace.TraceIDRatioBased(ratio))
	default:
		return trace.ParentBased(trace.AlwaysSample())
	}
}
