package calendar

import "time"

// Calendar describes one calendar known to the Calendar application.
// Sourced fresh on every query; never cached.
type Calendar struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Writable bool   `json:"writable"`
}

// Event is the view of a calendar event crossing the tool boundary.
// StartDate and EndDate are interchange strings (UTC ISO-8601, millisecond
// precision) after normalization; optional fields are empty strings when
// absent. The ID is unique within its owning calendar only.
type Event struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	AllDay      bool   `json:"all_day"`
	Calendar    string `json:"calendar"`
	URL         string `json:"url"`
	Status      string `json:"status"`
}

// PermissionStatus reports whether the Calendar application is reachable
// through the automation bridge, with human-readable diagnostics. Computed
// fresh on each check.
type PermissionStatus struct {
	Authorized  bool     `json:"authorized"`
	Diagnostics []string `json:"diagnostics"`
}

// FreeSlot is a gap inside a working-hour window large enough for a
// meeting. Derived, never persisted.
type FreeSlot struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"duration_minutes"`
}

// EventInput carries the parameters for creating an event.
type EventInput struct {
	Summary     string
	Description string
	Location    string
	URL         string
	Start       time.Time
	End         time.Time
	AllDay      bool

	// Calendar is the target calendar name. Empty targets the first
	// calendar in the application's own enumeration order.
	Calendar string
}

// RecurringEventInput carries the parameters for creating a recurring
// event. Frequency is one of daily, weekly, monthly, yearly.
type RecurringEventInput struct {
	EventInput
	Frequency string
	Interval  int
	EndDate   time.Time // zero means no end
}

// UpdateEventInput carries a partial update. Nil fields are omitted from
// the generated script; supplying no fields at all is an error.
type UpdateEventInput struct {
	Calendar string
	EventID  string

	Summary     *string
	Description *string
	Location    *string
	URL         *string
	Start       *time.Time
	End         *time.Time
	AllDay      *bool
}

// fieldCount returns the number of fields the update would change.
func (in UpdateEventInput) fieldCount() int {
	n := 0
	for _, set := range []bool{
		in.Summary != nil,
		in.Description != nil,
		in.Location != nil,
		in.URL != nil,
		in.Start != nil,
		in.End != nil,
		in.AllDay != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// ListOptions bounds an event listing.
type ListOptions struct {
	// Calendar filters to one calendar by name. Empty reads all calendars.
	Calendar string
	Start    time.Time
	End      time.Time
	Limit    int
}
