package applescript

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	valid := []string{
		"2025-01-15",
		"2025-01-15T10:00:00Z",
		"2025-01-15T10:00:00.000Z",
		"2025-01-15T10:00:00+02:00",
		"2025-01-15T10:00:00",
		"2025-01-15 10:00",
	}
	for _, s := range valid {
		if _, ok := ParseDate(s); !ok {
			t.Errorf("ParseDate(%q) failed, expected success", s)
		}
	}

	invalid := []string{"", "invalid", "not-a-date", "15/01/2025T10", "  "}
	for _, s := range invalid {
		if _, ok := ParseDate(s); ok {
			t.Errorf("ParseDate(%q) succeeded, expected failure", s)
		}
	}
}

func TestParseDate_Instant(t *testing.T) {
	got, ok := ParseDate("2025-01-15T10:30:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC), got.UTC())
}

func TestFormatHostDate(t *testing.T) {
	in := time.Date(2025, 1, 15, 14, 30, 0, 0, time.Local)
	got := FormatHostDate(in)
	assert.Equal(t, "January 15, 2025 2:30:00 PM", got)
}

func TestNormalizeISO(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "missing value sentinel", input: "missing value", expected: ""},
		{name: "unparseable", input: "garbage", expected: ""},
		{
			name:     "iso date-time",
			input:    "2025-01-15T10:00:00Z",
			expected: "2025-01-15T10:00:00.000Z",
		},
		{
			name:     "sub-second precision kept to milliseconds",
			input:    "2025-01-15T10:00:00.123456Z",
			expected: "2025-01-15T10:00:00.123Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeISO(tt.input); got != tt.expected {
				t.Errorf("NormalizeISO(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeISO_DateOnly(t *testing.T) {
	got := NormalizeISO("2025-01-15")
	require.NotEmpty(t, got)
	assert.True(t, strings.HasSuffix(got, "Z"))
}

// A host date literal fed back through NormalizeISO yields the original
// instant truncated to second precision; the host format carries no
// sub-second resolution.
func TestHostDateRoundTrip(t *testing.T) {
	in := time.Date(2025, 6, 3, 9, 15, 42, 123456789, time.Local)
	normalized := NormalizeISO(FormatHostDate(in))
	require.NotEmpty(t, normalized)

	got, ok := ParseDate(normalized)
	require.True(t, ok)
	assert.Equal(t, in.Truncate(time.Second).UTC(), got.UTC())
}

func TestNormalizeISO_HostEchoWithWeekday(t *testing.T) {
	got := NormalizeISO("Wednesday, January 15, 2025 at 2:30:00 PM")
	require.NotEmpty(t, got)

	parsed, ok := ParseDate(got)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 15, 14, 30, 0, 0, time.Local).UTC(), parsed.UTC())
}
