// Package calendar_tools implements MCP tools for the macOS Calendar
// application. Tool schemas, required arguments and enum constraints live in
// one declarative registry; a single validation routine checks every call
// before any AppleScript is executed.
package calendar_tools
