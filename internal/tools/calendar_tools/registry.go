package calendar_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/maccal/internal/server"
	"github.com/teemow/maccal/internal/tools/common"
)

// toolHandler executes one validated tool call.
type toolHandler func(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) (*mcp.CallToolResult, error)

// toolDef binds a tool schema to its validation contract and handler.
// The registry is read-only after initialization.
type toolDef struct {
	tool      mcp.Tool
	operation string
	required  []string
	enums     map[string][]string
	handler   toolHandler
}

// frequencyValues is the fixed allowed-value set for recurrence frequencies.
var frequencyValues = []string{"daily", "weekly", "monthly", "yearly"}

// toolDefinitions returns the complete tool registry.
func toolDefinitions() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool("calendar_check_permissions",
				mcp.WithDescription("Check whether Calendar automation access is authorized, with diagnostics"),
			),
			operation: "check",
			handler:   handleCheckPermissions,
		},
		{
			tool: mcp.NewTool("calendar_get_calendars",
				mcp.WithDescription("List all calendars with id, name, color and writability"),
			),
			operation: "list",
			handler:   handleGetCalendars,
		},
		{
			tool: mcp.NewTool("calendar_get_events",
				mcp.WithDescription("List calendar events within a time range, sorted by start date"),
				mcp.WithString("calendar",
					mcp.Description("Calendar name to filter by (default: all calendars)"),
				),
				mcp.WithString("start_date",
					mcp.Description("Start of the range (ISO-8601, e.g. '2025-01-15' or '2025-01-15T09:00:00Z'). Defaults to now."),
				),
				mcp.WithString("end_date",
					mcp.Description("End of the range (ISO-8601). Defaults to 30 days after start."),
				),
				mcp.WithNumber("limit",
					mcp.Description("Maximum number of events to return (default: 100)"),
				),
			),
			operation: "list",
			handler:   handleGetEvents,
		},
		{
			tool: mcp.NewTool("calendar_create_event",
				mcp.WithDescription("Create a new calendar event and return its id"),
				mcp.WithString("summary",
					mcp.Required(),
					mcp.Description("Event title"),
				),
				mcp.WithString("start_date",
					mcp.Required(),
					mcp.Description("Start date/time (ISO-8601)"),
				),
				mcp.WithString("end_date",
					mcp.Description("End date/time (ISO-8601). Defaults to one hour after start, or 24 hours for all-day events."),
				),
				mcp.WithString("description",
					mcp.Description("Event description"),
				),
				mcp.WithString("location",
					mcp.Description("Event location"),
				),
				mcp.WithString("url",
					mcp.Description("URL associated with the event"),
				),
				mcp.WithBoolean("all_day",
					mcp.Description("Create as an all-day event"),
				),
				mcp.WithString("calendar",
					mcp.Description("Calendar name to create the event in (default: the first calendar)"),
				),
			),
			operation: "create",
			required:  []string{"summary", "start_date"},
			handler:   handleCreateEvent,
		},
		{
			tool: mcp.NewTool("calendar_update_event",
				mcp.WithDescription("Update fields of an existing event, matched by id within the named calendar"),
				mcp.WithString("event_id",
					mcp.Required(),
					mcp.Description("The id of the event to update"),
				),
				mcp.WithString("calendar",
					mcp.Required(),
					mcp.Description("The calendar containing the event"),
				),
				mcp.WithString("summary",
					mcp.Description("New event title"),
				),
				mcp.WithString("start_date",
					mcp.Description("New start date/time (ISO-8601)"),
				),
				mcp.WithString("end_date",
					mcp.Description("New end date/time (ISO-8601)"),
				),
				mcp.WithString("description",
					mcp.Description("New event description"),
				),
				mcp.WithString("location",
					mcp.Description("New event location"),
				),
				mcp.WithString("url",
					mcp.Description("New URL for the event"),
				),
				mcp.WithBoolean("all_day",
					mcp.Description("Change the all-day flag"),
				),
			),
			operation: "update",
			required:  []string{"event_id", "calendar"},
			handler:   handleUpdateEvent,
		},
		{
			tool: mcp.NewTool("calendar_delete_event",
				mcp.WithDescription("Delete an event, matched by id within the named calendar"),
				mcp.WithString("event_id",
					mcp.Required(),
					mcp.Description("The id of the event to delete"),
				),
				mcp.WithString("calendar",
					mcp.Required(),
					mcp.Description("The calendar containing the event"),
				),
			),
			operation: "delete",
			required:  []string{"event_id", "calendar"},
			handler:   handleDeleteEvent,
		},
		{
			tool: mcp.NewTool("calendar_search",
				mcp.WithDescription("Search events by case-insensitive substring match across summary, description and location over the next year"),
				mcp.WithString("query",
					mcp.Required(),
					mcp.Description("Text to search for"),
				),
				mcp.WithNumber("limit",
					mcp.Description("Maximum number of events to return (default: 50)"),
				),
			),
			operation: "search",
			required:  []string{"query"},
			handler:   handleSearch,
		},
		{
			tool: mcp.NewTool("calendar_get_today",
				mcp.WithDescription("List today's events (local midnight to midnight)"),
			),
			operation: "list",
			handler:   handleGetToday,
		},
		{
			tool: mcp.NewTool("calendar_get_upcoming",
				mcp.WithDescription("List events from now through the coming days"),
				mcp.WithNumber("days",
					mcp.Description("Number of days to look ahead (default: 7)"),
				),
			),
			operation: "list",
			handler:   handleGetUpcoming,
		},
		{
			tool: mcp.NewTool("calendar_find_free_time",
				mcp.WithDescription("Find free slots of at least the given duration within working hours on a day"),
				mcp.WithString("date",
					mcp.Required(),
					mcp.Description("The day to inspect (ISO-8601 date)"),
				),
				mcp.WithNumber("duration_minutes",
					mcp.Required(),
					mcp.Description("Minimum slot duration in minutes"),
				),
				mcp.WithNumber("start_hour",
					mcp.Description("Start of the working-hour window, 0-23 (default: 9)"),
				),
				mcp.WithNumber("end_hour",
					mcp.Description("End of the working-hour window, 1-24 (default: 17)"),
				),
			),
			operation: "search",
			required:  []string{"date", "duration_minutes"},
			handler:   handleFindFreeTime,
		},
		{
			tool: mcp.NewTool("calendar_create_recurring_event",
				mcp.WithDescription("Create a recurring event and return its id"),
				mcp.WithString("summary",
					mcp.Required(),
					mcp.Description("Event title"),
				),
				mcp.WithString("start_date",
					mcp.Required(),
					mcp.Description("Start date/time of the first occurrence (ISO-8601)"),
				),
				mcp.WithString("frequency",
					mcp.Required(),
					mcp.Description("Recurrence frequency: daily, weekly, monthly or yearly"),
				),
				mcp.WithNumber("interval",
					mcp.Description("Repeat every N frequency units (default: 1)"),
				),
				mcp.WithString("end_date",
					mcp.Description("Last date of the recurrence (ISO-8601). Omit for no end."),
				),
				mcp.WithString("description",
					mcp.Description("Event description"),
				),
				mcp.WithString("location",
					mcp.Description("Event location"),
				),
				mcp.WithBoolean("all_day",
					mcp.Description("Create as an all-day event"),
				),
				mcp.WithString("calendar",
					mcp.Description("Calendar name to create the event in (default: the first calendar)"),
				),
			),
			operation: "create",
			required:  []string{"summary", "start_date", "frequency"},
			enums:     map[string][]string{"frequency": frequencyValues},
			handler:   handleCreateRecurringEvent,
		},
		{
			tool: mcp.NewTool("calendar_open",
				mcp.WithDescription("Open the Calendar application"),
			),
			operation: "open",
			handler:   handleOpen,
		},
		{
			tool: mcp.NewTool("calendar_open_date",
				mcp.WithDescription("Open the Calendar application showing a specific date"),
				mcp.WithString("date",
					mcp.Required(),
					mcp.Description("The date to show (ISO-8601)"),
				),
			),
			operation: "open",
			required:  []string{"date"},
			handler:   handleOpenDate,
		},
	}
}

// Catalog returns the schemas of all registered tools, for documentation and
// resource listing.
func Catalog() []mcp.Tool {
	defs := toolDefinitions()
	tools := make([]mcp.Tool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, def.tool)
	}
	return tools
}

// argPresent reports whether a required argument carries a usable value.
// String arguments must be non-empty.
func argPresent(args map[string]interface{}, name string) bool {
	v, ok := args[name]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// validateArgs checks the declared required-argument set and enum
// constraints. All offending fields are named in one message; nothing is
// executed on violation.
func validateArgs(def toolDef, args map[string]interface{}) error {
	var missing []string
	for _, name := range def.required {
		if !argPresent(args, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	for name, allowed := range def.enums {
		v, ok := args[name].(string)
		if !ok || v == "" {
			continue
		}
		valid := false
		for _, a := range allowed {
			if strings.EqualFold(v, a) {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid %s %q (expected one of: %s)", name, v, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// Dispatch routes a tool call by name through validation to its handler.
// Unknown tool names and validation failures become error results; no error
// ever escapes as a Go error to the transport.
func Dispatch(ctx context.Context, sc *server.ServerContext, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	for _, def := range toolDefinitions() {
		if def.tool.Name != name {
			continue
		}
		if err := validateArgs(def, args); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return def.handler(ctx, sc, args)
	}
	return mcp.NewToolResultError(fmt.Sprintf("unknown tool: %s", name)), nil
}

// RegisterCalendarTools registers all Calendar tools with the MCP server.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	for _, def := range toolDefinitions() {
		def := def
		s.AddTool(def.tool, common.InstrumentedToolHandler(def.tool.Name, def.operation, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				args := request.GetArguments()
				if err := validateArgs(def, args); err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return def.handler(ctx, sc, args)
			}))
	}
	return nil
}
