package applescript

import (
	"strings"
	"time"
)

// HostDateLayout is the date literal form the Calendar script host accepts.
// Other layouts are rejected or silently misparsed by the `date "…"`
// coercion, so all date literals crossing into a script use this format.
const HostDateLayout = "January 2, 2006 3:04:05 PM"

// isoLayout renders instants for the MCP boundary: UTC, millisecond
// precision.
const isoLayout = "2006-01-02T15:04:05.000Z"

// MissingValue is the token the script host returns for an unset optional
// field. It is distinct from the empty string.
const MissingValue = "missing value"

// parseLayouts are tried in order by ParseDate. ISO-8601 date-time with
// zone, without zone, and date-only.
var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// FormatHostDate renders an instant as a host date literal in the local
// time zone, e.g. "January 15, 2025 2:30:00 PM".
func FormatHostDate(t time.Time) string {
	return t.Local().Format(HostDateLayout)
}

// ParseDate parses an ISO-8601 date or date-time string. The second return
// value is false for anything unparseable; callers treat that as
// missing/invalid rather than an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeISO converts a date string coming back from the script host into
// the interchange form (UTC ISO-8601, millisecond precision). Empty input
// and the host's missing-value sentinel both normalize to the empty string,
// as does anything unparseable. It never fails.
func NormalizeISO(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == MissingValue {
		return ""
	}
	if t, ok := ParseDate(s); ok {
		return t.UTC().Format(isoLayout)
	}
	// Host date echo, e.g. "Wednesday, January 15, 2025 at 2:30:00 PM" or
	// the literal form FormatHostDate produces.
	if t, ok := parseHostDate(s); ok {
		return t.UTC().Format(isoLayout)
	}
	return ""
}

// hostEchoLayouts cover the ways the script host renders dates as text,
// which vary with the weekday prefix and the "at" separator.
var hostEchoLayouts = []string{
	HostDateLayout,
	"Monday, January 2, 2006 at 3:04:05 PM",
	"Monday, January 2, 2006 3:04:05 PM",
	"January 2, 2006 at 3:04:05 PM",
}

func parseHostDate(s string) (time.Time, bool) {
	for _, layout := range hostEchoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
