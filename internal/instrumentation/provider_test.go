package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_Disabled(t *testing.T) {
	config := DefaultConfig()
	config.Enabled = false

	provider, err := NewProvider(context.Background(), config)
	require.NoError(t, err)
	assert.False(t, provider.Enabled())
	require.NotNil(t, provider.Metrics())

	// No-op recorder must be safe to use.
	provider.Metrics().RecordToolInvocation(context.Background(), "calendar_get_events", StatusSuccess, time.Second)
	provider.Metrics().RecordScriptExecution(context.Background(), StatusError, time.Second)

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_Stdout(t *testing.T) {
	config := DefaultConfig()
	config.MetricsExporter = ExporterStdout

	provider, err := NewProvider(context.Background(), config)
	require.NoError(t, err)
	assert.True(t, provider.Enabled())
	require.NotNil(t, provider.Metrics())

	provider.Metrics().RecordToolInvocation(context.Background(), "calendar_get_events", StatusSuccess, 10*time.Millisecond)
	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestProvider_NilSafety(t *testing.T) {
	var provider *Provider
	assert.False(t, provider.Enabled())
	assert.NotNil(t, provider.Metrics())
	assert.NoError(t, provider.Shutdown(context.Background()))
}
