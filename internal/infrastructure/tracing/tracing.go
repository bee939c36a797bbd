package tracing

import (
	"context"
	"fmt"
	"strings"

	"github.com/alimikegami/point-of-sales/payment-service/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

const (
	serviceNamespace = "point-of-sales"

	// AdyenEnvironmentKey records which provider environment the service
	// talks to, so test traffic is told apart from live traffic.
	AdyenEnvironmentKey = attribute.Key("adyen.environment")
)

// InitTracing exports spans over OTLP/HTTP to the configured collector and
// installs the provider and the W3C trace context propagator globally.
func InitTracing(conf *config.Config) (*trace.TracerProvider, error) {
	exporter, err := otlptrace.New(
		context.Background(),
		otlptracehttp.NewClient(
			otlptracehttp.WithEndpoint(fmt.Sprintf("%s:4318", conf.TracingConfig.CollectorHost)),
			otlptracehttp.WithInsecure(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(newResource(conf)),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tracerProvider, nil
}

func newResource(conf *config.Config) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(conf.ServiceName),
		semconv.ServiceNamespaceKey.String(serviceNamespace),
		semconv.DeploymentEnvironmentKey.String(conf.Environment),
		AdyenEnvironmentKey.String(strings.ToLower(conf.AdyenConfig.Environment)),
	)
}
