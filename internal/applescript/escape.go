package applescript

import "strings"

// Escape escapes a string for embedding in a double-quoted AppleScript
// literal. Backslashes are doubled first so that quote and newline escapes
// are not themselves re-escaped; the result, when placed between quotes,
// denotes exactly the original string.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\r\n", `\n`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\n`)
	return s
}

// Quote returns the escaped string wrapped in double quotes, ready to be
// inserted into a script body.
func Quote(s string) string {
	return `"` + Escape(s) + `"`
}
