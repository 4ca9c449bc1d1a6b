// Package telemetry groups Caliper's observability subpackages.
//
//   - logging: structured slog logging with secret redaction
//   - metrics: Prometheus metrics collection
//   - tracing: OpenTelemetry distributed tracing
//   - health: liveness and readiness endpoints for the demo service
package telemetry
