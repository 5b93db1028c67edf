package calendar_tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/maccal/internal/applescript"
	"github.com/teemow/maccal/internal/calendar"
	"github.com/teemow/maccal/internal/server"
	"github.com/teemow/maccal/internal/tools/common"
)

// errorResult converts a bridge failure into an error envelope. The
// not-authorized condition gets the fixed instructive message; everything
// else passes its message through unchanged.
func errorResult(err error) *mcp.CallToolResult {
	if errors.Is(err, applescript.ErrNotAuthorized) {
		return mcp.NewToolResultError(calendar.AuthorizationDeniedMessage)
	}
	return mcp.NewToolResultError(err.Error())
}

// jsonResult renders a structured payload as pretty-printed JSON.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format output: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// eventsResult renders an event listing: JSON for structured results, the
// raw bridge output for the opaque fallback.
func eventsResult(res calendar.EventsResult) (*mcp.CallToolResult, error) {
	if !res.Structured {
		return mcp.NewToolResultText(res.Raw), nil
	}
	return jsonResult(res.Events)
}

// dateArg parses a named ISO-8601 date argument. An absent argument returns
// the zero time; an unparseable one returns an error result.
func dateArg(args map[string]interface{}, name string) (time.Time, *mcp.CallToolResult) {
	s := common.StringArg(args, name)
	if s == "" {
		return time.Time{}, nil
	}
	t, ok := applescript.ParseDate(s)
	if !ok {
		return time.Time{}, mcp.NewToolResultError(
			fmt.Sprintf("invalid %s %q (expected an ISO-8601 date or date-time)", name, s))
	}
	return t, nil
}

func handleCheckPermissions(ctx context.Context, sc *server.ServerContext, _ map[string]interface{}) (*mcp.CallToolResult, error) {
	status := sc.CalendarClient().CheckPermissions(ctx)
	return jsonResult(status)
}

func handleGetCalendars(ctx context.Context, sc *server.ServerContext, _ map[string]interface{}) (*mcp.CallToolResult, error) {
	cals, err := sc.CalendarClient().ListCalendars(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(cals)
}

func handleGetEvents(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error) {
	start, errRes := dateArg(args, "start_date")
	if errRes != nil {
		return errRes, nil
	}
	end, errRes := dateArg(args, "end_date")
	if errRes != nil {
		return errRes, nil
	}

	res, err := sc.CalendarClient().ListEvents(ctx, calendar.ListOptions{
		Calendar: common.StringArg(args, "calendar"),
		Start:    start,
		End:      end,
		Limit:    common.IntArg(args, "limit", 0),
	})
	if err != nil {
		return errorResult(err), nil
	}
	return eventsResult(res)
}

func handleCreateEvent(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error) {
	start, errRes := dateArg(args, "start_date")
	if errRes != nil {
		return errRes, nil
	}
	end, errRes := dateArg(args, "end_date")
	if errRes != nil {
		return errRes, nil
	}

	id, err := sc.CalendarClient().CreateEvent(ctx, calendar.EventInput{
		Summary:     common.StringArg(args, "summary"),
		Description: common.StringArg(args, "description"),
		Location:    common.StringArg(args, "location"),
		URL:         common.StringArg(args, "url"),
		Start:       start,
		End:         end,
		AllDay:      common.BoolArg(args, "all_day", false),
		Calendar:    common.StringArg(args, "calendar"),
	})
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(id), nil
}

func handleUpdateEvent(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error) {
	in := calendar.UpdateEventInput{
		Calendar:    common.StringArg(args, "calendar"),
		EventID:     common.StringArg(args, "event_id"),
		Summary:     common.OptionalStringArg(args, "summary"),
		Description: common.OptionalStringArg(args, "description"),
		Location:    common.OptionalStringArg(args, "location"),
		URL:         common.OptionalStringArg(args, "url"),
		AllDay:      common.OptionalBoolArg(args, "all_day"),
	}

	if s := common.StringArg(args, "start_date"); s != "" {
		t, ok := applescript.ParseDate(s)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start_date %q (expected an ISO-8601 date or date-time)", s)), nil
		}
		in.Start = &t
	}
	if s := common.StringArg(args, "end_date"); s != "" {
		t, ok := applescript.ParseDate(s)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid end_date %q (expected an ISO-8601 date or date-time)", s)), nil
		}
		in.End = &t
	}

	id, err := sc.CalendarClient().UpdateEvent(ctx, in)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(id), nil
}

func handleDeleteEvent(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error) {
	err := sc.CalendarClient().DeleteEvent(ctx,
		common.StringArg(args, "calendar"),
		common.StringArg(args, "event_id"))
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText("Event deleted"), nil
}

func handleSearch(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error) {
	res, err := sc.CalendarClient().SearchEvents(ctx,
		common.StringArg(args, "query"),
		common.IntArg(args, "limit", 0))
	if err != nil {
		return errorResult(err), nil
	}
	return eventsResult(res)
}

func handleGetToday(ctx context.Context, sc *server.ServerContext, _ map[string]interface{}) (*mcp.CallToolResult, error) {
	res, err := sc.CalendarClient().TodayEvents(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return eventsResult(res)
}

func handleGetUpcoming(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error) {
	res, err := sc.CalendarClient().UpcomingEvents(ctx, common.IntArg(args, "days", 0))
	if err != nil {
		return errorResult(err), nil
	}
	return eventsResult(res)
}

func handleFindFreeTime(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error) {
	day, errRes := dateArg(args, "date")
	if errRes != nil {
		return errRes, nil
	}
	minutes := common.IntArg(args, "duration_minutes", 0)
	if minutes <= 0 {
		return mcp.NewToolResultError("duration_minutes must be a positive number"), nil
	}

	slots, err := sc.CalendarClient().FindFreeTime(ctx, day,
		time.Duration(minutes)*time.Minute,
		common.IntArg(args, "start_hour", -1),
		common.IntArg(args, "end_hour", -1))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(slots)
}

func handleCreateRecurringEvent(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error) {
	start, errRes := dateArg(args, "start_date")
	if errRes != nil {
		return errRes, nil
	}
	until, errRes := dateArg(args, "end_date")
	if errRes != nil {
		return errRes, nil
	}

	id, err := sc.CalendarClient().CreateRecurringEvent(ctx, calendar.RecurringEventInput{
		EventInput: calendar.EventInput{
			Summary:     common.StringArg(args, "summary"),
			Description: common.StringArg(args, "description"),
			Location:    common.StringArg(args, "location"),
			Start:       start,
			AllDay:      common.BoolArg(args, "all_day", false),
			Calendar:    common.StringArg(args, "calendar"),
		},
		Frequency: common.StringArg(args, "frequency"),
		Interval:  common.IntArg(args, "interval", 1),
		EndDate:   until,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(id), nil
}

func handleOpen(ctx context.Context, sc *server.ServerContext, _ map[string]interface{}) (*mcp.CallToolResult, error) {
	if err := sc.CalendarClient().OpenCalendar(ctx); err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText("Calendar opened"), nil
}

func handleOpenDate(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error) {
	day, errRes := dateArg(args, "date")
	if errRes != nil {
		return errRes, nil
	}
	if err := sc.CalendarClient().OpenDate(ctx, day); err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Calendar opened to %s", day.Format("2006-01-02"))), nil
}
