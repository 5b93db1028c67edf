package applescript

import (
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain string untouched",
			input:    "Team Meeting",
			expected: "Team Meeting",
		},
		{
			name:     "double quotes",
			input:    `say "hello"`,
			expected: `say \"hello\"`,
		},
		{
			name:     "backslash",
			input:    `path\to\file`,
			expected: `path\\to\\file`,
		},
		{
			name:     "backslash before quote does not double-escape",
			input:    `\"`,
			expected: `\\\"`,
		},
		{
			name:     "newline",
			input:    "line one\nline two",
			expected: `line one\nline two`,
		},
		{
			name:     "carriage return variants",
			input:    "a\r\nb\rc",
			expected: `a\nb\nc`,
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Escape(tt.input)
			if result != tt.expected {
				t.Errorf("Escape(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	if got := Quote(`a "b"`); got != `"a \"b\""` {
		t.Errorf("Quote() = %q", got)
	}
}
