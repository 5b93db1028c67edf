package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/teemow/maccal/internal/applescript"
)

// Operation defaults. Listing windows are measured from the moment of the
// call; nothing is remembered between calls.
const (
	DefaultListWindow   = 30 * 24 * time.Hour
	DefaultListLimit    = 100
	DefaultSearchLimit  = 50
	DefaultSearchWindow = 365 * 24 * time.Hour
	DefaultUpcomingDays = 7
	DefaultWorkdayStart = 9
	DefaultWorkdayEnd   = 17
)

// AuthorizationDeniedMessage is the fixed user-facing translation of the
// bridge's not-authorized failure. Never retried automatically.
const AuthorizationDeniedMessage = "Calendar access is not authorized. " +
	"Grant this application automation access to Calendar in System Settings " +
	"under Privacy & Security > Automation, then try again."

// Client executes calendar operations against the Calendar application.
// Each method is one independent script round trip.
type Client struct {
	runner applescript.Runner
	logger *slog.Logger
}

// NewClient returns a client using the given runner. A nil logger falls
// back to slog.Default().
func NewClient(runner applescript.Runner, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{runner: runner, logger: logger}
}

// CheckPermissions probes the automation bridge with a minimal script.
// It never fails; failures are reported through the status.
func (c *Client) CheckPermissions(ctx context.Context) PermissionStatus {
	status := PermissionStatus{}
	if runtime.GOOS != "darwin" {
		status.Diagnostics = append(status.Diagnostics,
			fmt.Sprintf("Calendar automation requires macOS (running on %s)", runtime.GOOS))
		return status
	}

	out, err := c.runner.Run(ctx, permissionProbeScript())
	switch {
	case err == nil:
		status.Authorized = true
		status.Diagnostics = append(status.Diagnostics,
			fmt.Sprintf("Calendar application reachable (%s calendars)", out))
	case errors.Is(err, applescript.ErrNotAuthorized):
		status.Diagnostics = append(status.Diagnostics, AuthorizationDeniedMessage)
	default:
		status.Diagnostics = append(status.Diagnostics,
			fmt.Sprintf("Calendar probe failed: %v", err))
	}
	return status
}

// ListCalendars returns all calendars with id, name, color and writability.
func (c *Client) ListCalendars(ctx context.Context) ([]Calendar, error) {
	out, err := c.runner.Run(ctx, listCalendarsScript())
	if err != nil {
		return nil, err
	}
	cals, ok := parseCalendars(out)
	if !ok {
		return nil, fmt.Errorf("unexpected calendar listing output: %s", out)
	}
	return cals, nil
}

// ListEvents lists events in a window, ascending by start. Zero-valued
// options get the operation defaults: now .. now+30d, limit 100, all
// calendars.
func (c *Client) ListEvents(ctx context.Context, opts ListOptions) (EventsResult, error) {
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}
	if opts.End.IsZero() {
		opts.End = opts.Start.Add(DefaultListWindow)
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultListLimit
	}

	out, err := c.runner.Run(ctx, listEventsScript(opts))
	if err != nil {
		return EventsResult{}, err
	}
	return parseEventsResult(out), nil
}

// CreateEvent creates an event and returns the new event id. A missing end
// defaults to start+1h, or the following midnight-to-midnight span for
// all-day events.
func (c *Client) CreateEvent(ctx context.Context, in EventInput) (string, error) {
	applyEndDefault(&in)
	return c.runner.Run(ctx, createEventScript(in))
}

// frequencies maps tool-level frequency tokens to recurrence frequencies.
var frequencies = map[string]rrule.Frequency{
	"daily":   rrule.DAILY,
	"weekly":  rrule.WEEKLY,
	"monthly": rrule.MONTHLY,
	"yearly":  rrule.YEARLY,
}

// ValidFrequency reports whether the token names a supported recurrence
// frequency.
func ValidFrequency(freq string) bool {
	_, ok := frequencies[strings.ToLower(freq)]
	return ok
}

// recurrenceRule builds the RRULE text the Calendar application stores on
// a recurring event.
func recurrenceRule(in RecurringEventInput) (string, error) {
	freq, ok := frequencies[strings.ToLower(in.Frequency)]
	if !ok {
		return "", fmt.Errorf("invalid frequency %q (expected daily, weekly, monthly or yearly)", in.Frequency)
	}
	opt := rrule.ROption{Freq: freq, Interval: in.Interval}
	if !in.EndDate.IsZero() {
		opt.Until = in.EndDate.UTC()
	}
	if _, err := rrule.NewRRule(opt); err != nil {
		return "", fmt.Errorf("invalid recurrence: %w", err)
	}
	return opt.RRuleString(), nil
}

// CreateRecurringEvent creates a recurring event and returns the new event
// id. Interval defaults to 1.
func (c *Client) CreateRecurringEvent(ctx context.Context, in RecurringEventInput) (string, error) {
	if in.Interval <= 0 {
		in.Interval = 1
	}
	rule, err := recurrenceRule(in)
	if err != nil {
		return "", err
	}
	applyEndDefault(&in.EventInput)
	return c.runner.Run(ctx, createRecurringEventScript(in, rule))
}

// UpdateEvent applies a partial update to an event, matching the first
// event with the given id within the named calendar only. It fails without
// touching the bridge when no fields are supplied.
func (c *Client) UpdateEvent(ctx context.Context, in UpdateEventInput) (string, error) {
	if in.fieldCount() == 0 {
		return "", errors.New("no fields to update")
	}
	return c.runner.Run(ctx, updateEventScript(in))
}

// DeleteEvent removes the first event with the given id from the named
// calendar. A lookup miss surfaces as the bridge's own failure.
func (c *Client) DeleteEvent(ctx context.Context, calendarName, eventID string) error {
	_, err := c.runner.Run(ctx, deleteEventScript(calendarName, eventID))
	return err
}

// SearchEvents matches query case-insensitively against summary,
// description and location over the next 365 days. Limit defaults to 50.
func (c *Client) SearchEvents(ctx context.Context, query string, limit int) (EventsResult, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	start := time.Now()
	out, err := c.runner.Run(ctx, searchEventsScript(query, start, start.Add(DefaultSearchWindow), limit))
	if err != nil {
		return EventsResult{}, err
	}
	return parseEventsResult(out), nil
}

// TodayEvents lists events between local midnight today and local midnight
// tomorrow.
func (c *Client) TodayEvents(ctx context.Context) (EventsResult, error) {
	start := midnight(time.Now())
	return c.ListEvents(ctx, ListOptions{Start: start, End: start.AddDate(0, 0, 1)})
}

// UpcomingEvents lists events from now through now+days. Days defaults
// to 7.
func (c *Client) UpcomingEvents(ctx context.Context, days int) (EventsResult, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	now := time.Now()
	return c.ListEvents(ctx, ListOptions{Start: now, End: now.AddDate(0, 0, days)})
}

// FindFreeTime computes gaps of at least duration inside the working-hour
// window of the given day, minus existing events across all calendars.
// Hours outside 0..24 or an inverted window fall back to the defaults.
func (c *Client) FindFreeTime(ctx context.Context, day time.Time, duration time.Duration, startHour, endHour int) ([]FreeSlot, error) {
	if startHour < 0 || startHour > 23 {
		startHour = DefaultWorkdayStart
	}
	if endHour <= startHour || endHour > 24 {
		endHour = DefaultWorkdayEnd
		if endHour <= startHour {
			endHour = startHour + 1
		}
	}
	dayStart := midnight(day)
	windowStart := dayStart.Add(time.Duration(startHour) * time.Hour)
	windowEnd := dayStart.Add(time.Duration(endHour) * time.Hour)

	result, err := c.ListEvents(ctx, ListOptions{Start: dayStart, End: dayStart.AddDate(0, 0, 1)})
	if err != nil {
		return nil, err
	}
	if !result.Structured {
		return nil, fmt.Errorf("unexpected event listing output: %s", result.Raw)
	}
	return ComputeFreeSlots(result.Events, windowStart, windowEnd, duration), nil
}

// OpenCalendar brings the Calendar application to the foreground.
func (c *Client) OpenCalendar(ctx context.Context) error {
	_, err := c.runner.Run(ctx, openCalendarScript())
	return err
}

// OpenDate brings the Calendar application to the foreground showing the
// given date.
func (c *Client) OpenDate(ctx context.Context, t time.Time) error {
	_, err := c.runner.Run(ctx, openDateScript(t))
	return err
}

// applyEndDefault fills a zero end instant: start+1h, or start+24h for
// all-day events.
func applyEndDefault(in *EventInput) {
	if !in.End.IsZero() {
		return
	}
	if in.AllDay {
		in.End = in.Start.Add(24 * time.Hour)
		return
	}
	in.End = in.Start.Add(time.Hour)
}

// midnight returns local midnight of the day containing t.
func midnight(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
