package instrumentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "maccal", config.ServiceName)
	assert.True(t, config.Enabled)
	assert.Equal(t, ExporterPrometheus, config.MetricsExporter)
	assert.True(t, config.AuditLogging.Enabled)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("INSTRUMENTATION_EXPORTER", "stdout")
	t.Setenv("AUDIT_LOGGING_ENABLED", "false")

	config, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.False(t, config.Enabled)
	assert.Equal(t, ExporterStdout, config.MetricsExporter)
	assert.False(t, config.AuditLogging.Enabled)
}

func TestConfigFromEnv_InvalidBool(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "maybe")
	_, err := ConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INSTRUMENTATION_ENABLED")
}

func TestConfigFromEnv_InvalidExporter(t *testing.T) {
	t.Setenv("INSTRUMENTATION_EXPORTER", "graphite")
	_, err := ConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graphite")
}
