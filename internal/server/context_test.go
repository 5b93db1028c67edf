package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/maccal/internal/applescript"
	"github.com/teemow/maccal/internal/calendar"
	"github.com/teemow/maccal/internal/instrumentation"
)

func TestServerContextLifecycle(t *testing.T) {
	client := calendar.NewClient(applescript.NewOsascript(nil), nil)
	sc := NewServerContext(context.Background(), client)

	assert.Same(t, client, sc.CalendarClient())
	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Context().Err())

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	assert.Error(t, sc.Context().Err())

	// Shutdown is idempotent.
	require.NoError(t, sc.Shutdown())
}

func TestServerContextInstrumentation(t *testing.T) {
	sc := NewServerContext(context.Background(), nil)
	assert.Nil(t, sc.Metrics())
	assert.Nil(t, sc.AuditLogger())

	metrics := &instrumentation.Metrics{}
	audit := instrumentation.NewAuditLogger(nil, instrumentation.AuditLoggingConfig{Enabled: true})
	sc.SetMetrics(metrics)
	sc.SetAuditLogger(audit)

	assert.Same(t, metrics, sc.Metrics())
	assert.Same(t, audit, sc.AuditLogger())
}

func TestHealthChecker(t *testing.T) {
	sc := NewServerContext(context.Background(), nil)
	h := NewHealthChecker(sc)
	assert.True(t, h.IsReady())

	h.SetReady(false)
	assert.False(t, h.IsReady())
}

func TestNewMetricsServer_RequiresEnabledProvider(t *testing.T) {
	config := instrumentation.DefaultConfig()
	config.Enabled = false
	provider, err := instrumentation.NewProvider(context.Background(), config)
	require.NoError(t, err)

	_, err = NewMetricsServer(MetricsServerConfig{Provider: provider})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enabled")
}
