package instrumentation

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToolInvocationLifecycle(t *testing.T) {
	ti := NewToolInvocation("calendar_get_events").WithOperation("list")
	assert.Equal(t, "calendar_get_events", ti.Tool)
	assert.Equal(t, "list", ti.Operation)
	assert.False(t, ti.StartTime.IsZero())

	ti.Complete(true)
	assert.True(t, ti.Success)
	assert.Equal(t, StatusSuccess, ti.Status())

	failed := NewToolInvocation("calendar_delete_event").CompleteWithError(errors.New("event not found"))
	assert.False(t, failed.Success)
	assert.Equal(t, StatusError, failed.Status())
	assert.Equal(t, "event not found", failed.Error)
}

func TestToolInvocationLogAttrs(t *testing.T) {
	ti := &ToolInvocation{
		Tool:     "calendar_search",
		Duration: 42 * time.Millisecond,
		Success:  true,
	}
	attrs := ti.LogAttrs()
	assert.Len(t, attrs, 3)

	ti.Operation = "search"
	ti.Error = "boom"
	assert.Len(t, ti.LogAttrs(), 5)
}

func TestAuditLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	audit := NewAuditLogger(logger, AuditLoggingConfig{Enabled: true})
	audit.LogToolInvocation(NewToolInvocation("calendar_open").Complete(true))

	out := buf.String()
	assert.Contains(t, out, "tool invocation")
	assert.Contains(t, out, "tool=calendar_open")
	assert.Contains(t, out, "success=true")
}

func TestAuditLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	audit := NewAuditLogger(logger, AuditLoggingConfig{Enabled: false})
	audit.LogToolInvocation(NewToolInvocation("calendar_open").Complete(true))

	if strings.TrimSpace(buf.String()) != "" {
		t.Errorf("disabled audit logger wrote output: %s", buf.String())
	}
}

func TestAuditLogger_NilSafety(t *testing.T) {
	var audit *AuditLogger
	audit.LogToolInvocation(nil) // must not panic
}
