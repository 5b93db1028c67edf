// Package server holds the shared state of a running maccal MCP server:
// the calendar client, instrumentation hooks, and the auxiliary HTTP
// endpoints (Prometheus metrics, health probes) used by the
// streamable-http transport.
package server
