package resources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/maccal/internal/calendar"
	"github.com/teemow/maccal/internal/server"
)

type stubRunner struct {
	out string
	err error
}

func (r *stubRunner) Run(_ context.Context, _ string) (string, error) {
	return r.out, r.err
}

func readRequest(uri string) mcp.ReadResourceRequest {
	var request mcp.ReadResourceRequest
	request.Params.URI = uri
	return request
}

func TestHandleCalendarList(t *testing.T) {
	runner := &stubRunner{out: `[{"id":"CAL-1","name":"Work","color":"#FF0000","writable":true}]`}
	client := calendar.NewClient(runner, nil)
	sc := server.NewServerContext(context.Background(), client)

	contents, err := handleCalendarList(context.Background(), readRequest("calendars://list"), sc)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "calendars://list", text.URI)
	assert.Equal(t, "application/json", text.MIMEType)

	var cals []calendar.Calendar
	require.NoError(t, json.Unmarshal([]byte(text.Text), &cals))
	require.Len(t, cals, 1)
	assert.Equal(t, "Work", cals[0].Name)
}

func TestHandleToolCatalog(t *testing.T) {
	contents, err := handleToolCatalog(context.Background(), readRequest("tools://catalog"))
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok)

	var entries []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &entries))
	assert.Len(t, entries, 13)
}
