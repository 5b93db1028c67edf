// Package resources provides MCP resources for read-only calendar data.
// Resources are data sources MCP clients can fetch without invoking a tool,
// such as the calendar listing and the tool catalog.
package resources
