package common

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/maccal/internal/server"
)

func TestInstrumentedToolHandler_NoInstrumentation(t *testing.T) {
	sc := server.NewServerContext(context.Background(), nil)

	called := false
	handler := InstrumentedToolHandler("calendar_get_events", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			called = true
			return mcp.NewToolResultText("ok"), nil
		})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, called)
}

func TestInstrumentedToolHandler_PropagatesError(t *testing.T) {
	sc := server.NewServerContext(context.Background(), nil)

	wantErr := errors.New("script timed out")
	handler := InstrumentedToolHandler("calendar_get_events", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return nil, wantErr
		})

	_, err := handler(context.Background(), mcp.CallToolRequest{})
	assert.ErrorIs(t, err, wantErr)
}
