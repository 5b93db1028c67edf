// Package instrumentation provides OpenTelemetry metrics and audit logging
// for the maccal MCP server.
//
// The Provider owns the meter provider and its exporter (Prometheus by
// default, stdout for development). Metrics records tool invocations and
// osascript executions; the audit logger writes one structured record per
// tool call.
//
// Instrumentation is optional: with INSTRUMENTATION_ENABLED=false the
// provider is inert and recording methods are no-ops, which keeps the
// stdio transport free of any side channel.
package instrumentation
