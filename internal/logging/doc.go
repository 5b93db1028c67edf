// Package logging provides structured logging utilities for the maccal
// application.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// Everything logs to stderr: in stdio transport mode, stdout belongs to the
// MCP protocol stream and must never carry log output.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "calendar_get_events")
//	logger.Info("listing events",
//	    logging.Status(logging.StatusSuccess))
package logging
