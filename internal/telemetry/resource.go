// Package telemetry wires OpenTelemetry tracing and metrics for the
// logistics services.
package telemetry

import (
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Service identifies the process in exported spans and metrics.
type Service struct {
	Name    string
	Version string
}

func (s Service) resource() *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(s.Name),
		semconv.ServiceVersion(s.Version),
	)
}
