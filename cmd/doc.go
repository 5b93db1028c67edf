// Package cmd implements the command-line interface for maccal.
//
// This package provides the following commands:
//   - serve: Start the MCP server providing Calendar tools for AI assistants
//   - check: Verify Calendar automation access from the terminal
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
