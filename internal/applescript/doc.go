// Package applescript provides the execution bridge to the macOS Calendar
// application via osascript, along with the text and date helpers needed to
// safely embed values in generated AppleScript programs.
//
// Scripts are plain text handed to the osascript binary; there is no
// structured API underneath. Every dynamic string must be escaped with
// Escape before embedding, and every date literal must be rendered with
// FormatHostDate, which is the only form the script host parses reliably.
package applescript
