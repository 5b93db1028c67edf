package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/teemow/maccal/internal/applescript"
)

// scriptHelpers are AppleScript handlers embedded in every event-iterating
// script. The script host has no built-in replace-all or case-fold, so both
// are provided here; jsonString escapes a value for embedding in the JSON
// text the script assembles by concatenation. The host implicitly reassigns
// `result` after every command, so no handler may accumulate into it.
const scriptHelpers = `on replaceText(subject, find, replacement)
	set prevTIDs to AppleScript's text item delimiters
	set AppleScript's text item delimiters to find
	set subject to text items of subject
	set AppleScript's text item delimiters to replacement
	set subject to subject as text
	set AppleScript's text item delimiters to prevTIDs
	return subject
end replaceText

on toLowerText(subject)
	set upperChars to "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	set lowerChars to "abcdefghijklmnopqrstuvwxyz"
	set folded to ""
	repeat with ch in characters of subject
		set idx to offset of ch in upperChars
		if idx > 0 then
			set folded to folded & character idx of lowerChars
		else
			set folded to folded & ch
		end if
	end repeat
	return folded
end toLowerText

on textOrEmpty(subject)
	if subject is missing value then return ""
	return subject as text
end textOrEmpty

on jsonString(subject)
	set subject to my textOrEmpty(subject)
	set subject to my replaceText(subject, "\\", "\\\\")
	set subject to my replaceText(subject, "\"", "\\\"")
	set subject to my replaceText(subject, return, "\\n")
	set subject to my replaceText(subject, linefeed, "\\n")
	return subject
end jsonString

`

// eventEntryFragment renders one event as a JSON object. Shared by the
// listing and search scripts; expects cal/evt/calName in scope.
const eventEntryFragment = `			set entry to "{\"id\":\"" & my jsonString(uid of evt) & "\""
			set entry to entry & ",\"summary\":\"" & my jsonString(summary of evt) & "\""
			set entry to entry & ",\"description\":\"" & my jsonString(description of evt) & "\""
			set entry to entry & ",\"location\":\"" & my jsonString(location of evt) & "\""
			set entry to entry & ",\"start_date\":\"" & my jsonString(start date of evt as string) & "\""
			set entry to entry & ",\"end_date\":\"" & my jsonString(end date of evt as string) & "\""
			set entry to entry & ",\"all_day\":" & (allday event of evt)
			set entry to entry & ",\"calendar\":\"" & my jsonString(calName) & "\""
			set entry to entry & ",\"url\":\"" & my jsonString(url of evt) & "\""
			set entry to entry & ",\"status\":\"" & my jsonString(status of evt as string) & "\"}"
			if emitted > 0 then set jsonOut to jsonOut & ","
			set jsonOut to jsonOut & entry
			set emitted to emitted + 1`

// calendarSelector restricts iteration to one calendar by name, or all
// calendars when name is empty.
func calendarSelector(name string) string {
	if name == "" {
		return "calendars"
	}
	return fmt.Sprintf("(every calendar whose name is %s)", applescript.Quote(name))
}

// calendarTarget is the calendar a write lands on: the named calendar, or
// the first calendar in the application's own enumeration order when no
// name is given. That order is whatever the application reports and is not
// guaranteed stable across external changes.
func calendarTarget(name string) string {
	if name == "" {
		return "first calendar"
	}
	return fmt.Sprintf("calendar %s", applescript.Quote(name))
}

func permissionProbeScript() string {
	return `tell application "Calendar" to return (count of calendars) as string`
}

func listCalendarsScript() string {
	return scriptHelpers + `set jsonOut to "["
set emitted to 0
tell application "Calendar"
	repeat with cal in calendars
		set entry to "{\"id\":\"" & my jsonString(uid of cal) & "\""
		set entry to entry & ",\"name\":\"" & my jsonString(name of cal) & "\""
		set entry to entry & ",\"color\":\"" & my jsonString(color of cal as string) & "\""
		set entry to entry & ",\"writable\":" & (writable of cal) & "}"
		if emitted > 0 then set jsonOut to jsonOut & ","
		set jsonOut to jsonOut & entry
		set emitted to emitted + 1
	end repeat
end tell
return jsonOut & "]"`
}

func listEventsScript(opts ListOptions) string {
	return scriptHelpers + fmt.Sprintf(`set windowStart to date "%s"
set windowEnd to date "%s"
set maxCount to %d
set jsonOut to "["
set emitted to 0
tell application "Calendar"
	repeat with cal in %s
		set calName to name of cal
		set matching to (every event of cal whose start date is greater than or equal to windowStart and start date is less than windowEnd)
		repeat with evt in matching
			if emitted is greater than or equal to maxCount then exit repeat
%s
		end repeat
	end repeat
end tell
return jsonOut & "]"`,
		applescript.FormatHostDate(opts.Start),
		applescript.FormatHostDate(opts.End),
		opts.Limit,
		calendarSelector(opts.Calendar),
		eventEntryFragment)
}

func searchEventsScript(query string, start, end time.Time, limit int) string {
	return scriptHelpers + fmt.Sprintf(`set needle to my toLowerText("%s")
set windowStart to date "%s"
set windowEnd to date "%s"
set maxCount to %d
set jsonOut to "["
set emitted to 0
tell application "Calendar"
	repeat with cal in calendars
		set calName to name of cal
		set matching to (every event of cal whose start date is greater than or equal to windowStart and start date is less than windowEnd)
		repeat with evt in matching
			if emitted is greater than or equal to maxCount then exit repeat
			set hay to my textOrEmpty(summary of evt) & " " & my textOrEmpty(description of evt) & " " & my textOrEmpty(location of evt)
			if my toLowerText(hay) contains needle then
%s
			end if
		end repeat
	end repeat
end tell
return jsonOut & "]"`,
		applescript.Escape(query),
		applescript.FormatHostDate(start),
		applescript.FormatHostDate(end),
		limit,
		eventEntryFragment)
}

func createEventScript(in EventInput) string {
	props := []string{
		fmt.Sprintf("summary:%s", applescript.Quote(in.Summary)),
		fmt.Sprintf("start date:date %s", applescript.Quote(applescript.FormatHostDate(in.Start))),
		fmt.Sprintf("end date:date %s", applescript.Quote(applescript.FormatHostDate(in.End))),
	}
	if in.AllDay {
		props = append(props, "allday event:true")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "tell application \"Calendar\"\n\ttell %s\n", calendarTarget(in.Calendar))
	fmt.Fprintf(&b, "\t\tset newEvent to make new event with properties {%s}\n", strings.Join(props, ", "))
	if in.Description != "" {
		fmt.Fprintf(&b, "\t\tset description of newEvent to %s\n", applescript.Quote(in.Description))
	}
	if in.Location != "" {
		fmt.Fprintf(&b, "\t\tset location of newEvent to %s\n", applescript.Quote(in.Location))
	}
	if in.URL != "" {
		fmt.Fprintf(&b, "\t\tset url of newEvent to %s\n", applescript.Quote(in.URL))
	}
	b.WriteString("\t\treturn uid of newEvent\n\tend tell\nend tell")
	return b.String()
}

func createRecurringEventScript(in RecurringEventInput, rule string) string {
	props := []string{
		fmt.Sprintf("summary:%s", applescript.Quote(in.Summary)),
		fmt.Sprintf("start date:date %s", applescript.Quote(applescript.FormatHostDate(in.Start))),
		fmt.Sprintf("end date:date %s", applescript.Quote(applescript.FormatHostDate(in.End))),
		fmt.Sprintf("recurrence:%s", applescript.Quote(rule)),
	}
	if in.AllDay {
		props = append(props, "allday event:true")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "tell application \"Calendar\"\n\ttell %s\n", calendarTarget(in.Calendar))
	fmt.Fprintf(&b, "\t\tset newEvent to make new event with properties {%s}\n", strings.Join(props, ", "))
	if in.Description != "" {
		fmt.Fprintf(&b, "\t\tset description of newEvent to %s\n", applescript.Quote(in.Description))
	}
	if in.Location != "" {
		fmt.Fprintf(&b, "\t\tset location of newEvent to %s\n", applescript.Quote(in.Location))
	}
	b.WriteString("\t\treturn uid of newEvent\n\tend tell\nend tell")
	return b.String()
}

func updateEventScript(in UpdateEventInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "tell application \"Calendar\"\n\ttell calendar %s\n", applescript.Quote(in.Calendar))
	fmt.Fprintf(&b, "\t\tset evt to first event whose uid is %s\n", applescript.Quote(in.EventID))
	if in.Summary != nil {
		fmt.Fprintf(&b, "\t\tset summary of evt to %s\n", applescript.Quote(*in.Summary))
	}
	if in.Description != nil {
		fmt.Fprintf(&b, "\t\tset description of evt to %s\n", applescript.Quote(*in.Description))
	}
	if in.Location != nil {
		fmt.Fprintf(&b, "\t\tset location of evt to %s\n", applescript.Quote(*in.Location))
	}
	if in.URL != nil {
		fmt.Fprintf(&b, "\t\tset url of evt to %s\n", applescript.Quote(*in.URL))
	}
	if in.Start != nil {
		fmt.Fprintf(&b, "\t\tset start date of evt to date %s\n", applescript.Quote(applescript.FormatHostDate(*in.Start)))
	}
	if in.End != nil {
		fmt.Fprintf(&b, "\t\tset end date of evt to date %s\n", applescript.Quote(applescript.FormatHostDate(*in.End)))
	}
	if in.AllDay != nil {
		fmt.Fprintf(&b, "\t\tset allday event of evt to %t\n", *in.AllDay)
	}
	b.WriteString("\t\treturn uid of evt\n\tend tell\nend tell")
	return b.String()
}

func deleteEventScript(calendarName, eventID string) string {
	return fmt.Sprintf(`tell application "Calendar"
	tell calendar %s
		delete (first event whose uid is %s)
	end tell
end tell
return "deleted"`, applescript.Quote(calendarName), applescript.Quote(eventID))
}

func openCalendarScript() string {
	return `tell application "Calendar" to activate
return "opened"`
}

func openDateScript(t time.Time) string {
	return fmt.Sprintf(`set targetDate to date %s
tell application "Calendar"
	activate
	view calendar at targetDate
end tell
return "opened"`, applescript.Quote(applescript.FormatHostDate(t)))
}
