package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency
const (
	attrTool   = "tool"
	attrStatus = "status"
	attrResult = "result"
)

// Status values recorded on metrics.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics provides methods for recording observability metrics.
// The zero value is a usable no-op recorder.
type Metrics struct {
	// MCP tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// Automation bridge metrics
	scriptExecutionsTotal metric.Int64Counter
	scriptDuration        metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool invocation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	m.scriptExecutionsTotal, err = meter.Int64Counter(
		"applescript_executions_total",
		metric.WithDescription("Total number of AppleScript executions against the Calendar application"),
		metric.WithUnit("{execution}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create applescript_executions_total counter: %w", err)
	}

	m.scriptDuration, err = meter.Float64Histogram(
		"applescript_execution_duration_seconds",
		metric.WithDescription("AppleScript execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create applescript_execution_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordToolInvocation records one MCP tool invocation with its outcome and
// duration. Safe to call on a zero-value Metrics.
func (m *Metrics) RecordToolInvocation(ctx context.Context, tool, status string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordScriptExecution records one osascript round trip.
// Safe to call on a zero-value Metrics.
func (m *Metrics) RecordScriptExecution(ctx context.Context, status string, duration time.Duration) {
	if m == nil || m.scriptExecutionsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrResult, status),
	)
	m.scriptExecutionsTotal.Add(ctx, 1, attrs)
	m.scriptDuration.Record(ctx, duration.Seconds(), attrs)
}
