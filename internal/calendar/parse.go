package calendar

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/teemow/maccal/internal/applescript"
)

// EventsResult is the tagged outcome of an event-shaped script: either a
// structured event list, or the raw output as an opaque string when the
// output was not JSON. Decode failure is not an error; some operations
// legitimately return scalars.
type EventsResult struct {
	Structured bool
	Events     []Event
	Raw        string
}

// parseEventsResult interprets raw script output. Empty output is the
// zero-result case, never an error. Structured results get their date
// fields normalized to interchange form and are stable-sorted by ascending
// start; ties keep their input order.
func parseEventsResult(out string) EventsResult {
	out = strings.TrimSpace(out)
	if out == "" {
		return EventsResult{Structured: true, Events: []Event{}}
	}

	var events []Event
	if err := json.Unmarshal([]byte(out), &events); err != nil {
		return EventsResult{Raw: out}
	}

	for i := range events {
		events[i].StartDate = applescript.NormalizeISO(events[i].StartDate)
		events[i].EndDate = applescript.NormalizeISO(events[i].EndDate)
	}
	sortEventsByStart(events)
	return EventsResult{Structured: true, Events: events}
}

// sortEventsByStart sorts chronologically by the normalized start field.
// The sort is stable; no secondary key is defined for equal starts.
func sortEventsByStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate < events[j].StartDate
	})
}

// parseCalendars decodes a calendar listing. Empty output means no
// calendars; non-JSON output is surfaced verbatim in the error path by the
// caller, so decode failures return ok=false rather than an error here.
func parseCalendars(out string) ([]Calendar, bool) {
	out = strings.TrimSpace(out)
	if out == "" {
		return []Calendar{}, true
	}
	var cals []Calendar
	if err := json.Unmarshal([]byte(out), &cals); err != nil {
		return nil, false
	}
	return cals, true
}
