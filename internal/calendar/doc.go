// Package calendar implements the mapping layer between calendar operations
// and the macOS Calendar application.
//
// Each operation builds an AppleScript program (scripts.go), executes it
// through an applescript.Runner, and parses the textual result back into
// structured data (parse.go). Event lists come back as JSON assembled by the
// script itself; scalar results such as a newly created event id come back
// as plain text. Nothing is cached: every call is a fresh round trip against
// the Calendar application, which remains the system of record.
package calendar
