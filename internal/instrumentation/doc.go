// Package instrumentation provides OpenTelemetry metrics and tracing plus
// structured audit logging for MCP tool invocations.
//
// The Provider owns the meter and tracer providers and selects exporters
// from configuration: Prometheus (default), OTLP, or stdout for metrics;
// OTLP, stdout, or none (default) for traces. When instrumentation is
// disabled the Metrics recorder degrades to a no-op, so callers never
// need to branch on whether telemetry is configured.
//
// Audit logging records every tool invocation with its target spreadsheet
// and outcome through the process-wide slog logger on stderr.
package instrumentation
