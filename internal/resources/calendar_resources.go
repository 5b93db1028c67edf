package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/maccal/internal/server"
	"github.com/teemow/maccal/internal/tools/calendar_tools"
)

// RegisterCalendarResources registers read-only MCP resources: the live
// calendar listing and the tool catalog.
func RegisterCalendarResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	calendarsResource := mcp.NewResource(
		"calendars://list",
		"Calendar List",
		mcp.WithResourceDescription("All calendars known to the Calendar application, with id, name, color and writability"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(calendarsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleCalendarList(ctx, request, sc)
	})

	catalogResource := mcp.NewResource(
		"tools://catalog",
		"Tool Catalog",
		mcp.WithResourceDescription("Schemas of all calendar tools exposed by this server"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(catalogResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleToolCatalog(ctx, request)
	})

	return nil
}

func handleCalendarList(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	cals, err := sc.CalendarClient().ListCalendars(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	jsonData, err := json.MarshalIndent(cals, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal calendar list: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

func handleToolCatalog(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	type toolEntry struct {
		Name        string              `json:"name"`
		Description string              `json:"description"`
		InputSchema mcp.ToolInputSchema `json:"input_schema"`
	}

	tools := calendar_tools.Catalog()
	entries := make([]toolEntry, 0, len(tools))
	for _, tool := range tools {
		entries = append(entries, toolEntry{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}

	jsonData, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool catalog: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
