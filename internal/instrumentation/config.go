package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Supported metrics exporter types.
const (
	ExporterPrometheus = "prometheus"
	ExporterStdout     = "stdout"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: maccal)
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled determines if instrumentation is active (default: true)
	// Set to false via INSTRUMENTATION_ENABLED=false to disable metrics.
	Enabled bool

	// MetricsExporter specifies the metrics exporter type.
	// Options: "prometheus", "stdout" (default: "prometheus")
	MetricsExporter string

	// AuditLogging configures audit logging behavior.
	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig holds configuration for audit logging.
type AuditLoggingConfig struct {
	// Enabled determines if audit logging is active (default: true)
	Enabled bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ServiceName:     "maccal",
		ServiceVersion:  "dev",
		Enabled:         true,
		MetricsExporter: ExporterPrometheus,
		AuditLogging:    AuditLoggingConfig{Enabled: true},
	}
}

// ConfigFromEnv builds a Config from environment variables, starting from
// the defaults:
//
//	INSTRUMENTATION_ENABLED     - "false" disables instrumentation
//	INSTRUMENTATION_EXPORTER    - "prometheus" or "stdout"
//	AUDIT_LOGGING_ENABLED       - "false" disables audit logging
func ConfigFromEnv() (Config, error) {
	config := DefaultConfig()

	if v := os.Getenv("INSTRUMENTATION_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return config, fmt.Errorf("invalid INSTRUMENTATION_ENABLED value %q: %w", v, err)
		}
		config.Enabled = enabled
	}

	if v := os.Getenv("INSTRUMENTATION_EXPORTER"); v != "" {
		switch v {
		case ExporterPrometheus, ExporterStdout:
			config.MetricsExporter = v
		default:
			return config, fmt.Errorf("invalid INSTRUMENTATION_EXPORTER value %q (expected %s or %s)",
				v, ExporterPrometheus, ExporterStdout)
		}
	}

	if v := os.Getenv("AUDIT_LOGGING_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return config, fmt.Errorf("invalid AUDIT_LOGGING_ENABLED value %q: %w", v, err)
		}
		config.AuditLogging.Enabled = enabled
	}

	return config, nil
}
