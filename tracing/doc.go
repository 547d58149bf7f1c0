// Package tracing integrates OpenTelemetry with the launch engine: every
// visited action is recorded as a span. Without an installed provider spans
// are no-ops.
package tracing
