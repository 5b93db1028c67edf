package calendar_tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/maccal/internal/calendar"
	"github.com/teemow/maccal/internal/server"
)

// stubRunner records executed scripts and plays back a fixed response.
type stubRunner struct {
	calls []string
	out   string
	err   error
}

func (r *stubRunner) Run(_ context.Context, script string) (string, error) {
	r.calls = append(r.calls, script)
	return r.out, r.err
}

func newTestContext(runner *stubRunner) *server.ServerContext {
	client := calendar.NewClient(runner, nil)
	return server.NewServerContext(context.Background(), client)
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestCatalogNamesUnique(t *testing.T) {
	tools := Catalog()
	assert.Len(t, tools, 13)

	seen := map[string]bool{}
	for _, tool := range tools {
		assert.False(t, seen[tool.Name], "duplicate tool name %s", tool.Name)
		seen[tool.Name] = true
	}
}

func TestDispatch_UnknownTool(t *testing.T) {
	runner := &stubRunner{}
	sc := newTestContext(runner)

	res, err := Dispatch(context.Background(), sc, "unknown_tool", map[string]interface{}{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "unknown_tool")
	assert.Empty(t, runner.calls)
}

func TestDispatch_ValidationNamesEveryMissingField(t *testing.T) {
	runner := &stubRunner{}
	sc := newTestContext(runner)

	res, err := Dispatch(context.Background(), sc, "calendar_create_event", map[string]interface{}{
		"summary": "",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "summary")
	assert.Contains(t, text, "start_date")
	assert.Empty(t, runner.calls, "validation failure must not reach the bridge")

	// With summary present the message still names start_date.
	res, err = Dispatch(context.Background(), sc, "calendar_create_event", map[string]interface{}{
		"summary": "Standup",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	text = resultText(t, res)
	assert.NotContains(t, text, "summary")
	assert.Contains(t, text, "start_date")
	assert.Empty(t, runner.calls)
}

func TestDispatch_UpdateDeleteRequireEventIDAndCalendar(t *testing.T) {
	for _, tool := range []string{"calendar_update_event", "calendar_delete_event"} {
		t.Run(tool, func(t *testing.T) {
			runner := &stubRunner{}
			sc := newTestContext(runner)

			res, err := Dispatch(context.Background(), sc, tool, map[string]interface{}{})
			require.NoError(t, err)
			assert.True(t, res.IsError)
			text := resultText(t, res)
			assert.Contains(t, text, "event_id")
			assert.Contains(t, text, "calendar")
			assert.Empty(t, runner.calls)
		})
	}
}

func TestDispatch_SearchRequiresQuery(t *testing.T) {
	runner := &stubRunner{}
	sc := newTestContext(runner)

	res, err := Dispatch(context.Background(), sc, "calendar_search", map[string]interface{}{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "query")
	assert.Empty(t, runner.calls)
}

func TestDispatch_FrequencyEnum(t *testing.T) {
	runner := &stubRunner{out: "8EF3A649-0001"}
	sc := newTestContext(runner)

	base := map[string]interface{}{
		"summary":    "Standup",
		"start_date": "2025-01-15T09:00:00Z",
	}

	invalid := map[string]interface{}{"frequency": "hourly"}
	for k, v := range base {
		invalid[k] = v
	}
	res, err := Dispatch(context.Background(), sc, "calendar_create_recurring_event", invalid)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "hourly")
	assert.Empty(t, runner.calls)

	for _, freq := range []string{"daily", "weekly", "monthly", "yearly"} {
		args := map[string]interface{}{"frequency": freq}
		for k, v := range base {
			args[k] = v
		}
		res, err := Dispatch(context.Background(), sc, "calendar_create_recurring_event", args)
		require.NoError(t, err)
		assert.False(t, res.IsError, "frequency %s should pass validation", freq)
	}
	assert.Len(t, runner.calls, 4)
}

func TestValidateArgs_NumericRequired(t *testing.T) {
	defs := toolDefinitions()
	var freeTime toolDef
	for _, def := range defs {
		if def.tool.Name == "calendar_find_free_time" {
			freeTime = def
		}
	}
	require.NotEmpty(t, freeTime.tool.Name)

	err := validateArgs(freeTime, map[string]interface{}{"date": "2025-01-15"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration_minutes")

	err = validateArgs(freeTime, map[string]interface{}{
		"date":             "2025-01-15",
		"duration_minutes": float64(30),
	})
	assert.NoError(t, err)
}

func TestRegisterCalendarTools(t *testing.T) {
	runner := &stubRunner{}
	sc := newTestContext(runner)
	s := mcpserver.NewMCPServer("maccal-test", "0.0.0")

	require.NoError(t, RegisterCalendarTools(s, sc))
}

func TestDispatch_GetUpcomingDefaultsToSevenDays(t *testing.T) {
	runner := &stubRunner{out: "[]"}
	sc := newTestContext(runner)

	res, err := Dispatch(context.Background(), sc, "calendar_get_upcoming", map[string]interface{}{})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, runner.calls, 1)
	implicit := runner.calls[0]

	runner.calls = nil
	res, err = Dispatch(context.Background(), sc, "calendar_get_upcoming", map[string]interface{}{
		"days": float64(7),
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, runner.calls, 1)

	// Identical windows modulo the clock reading between the two calls:
	// compare everything outside the embedded date literals.
	assert.Equal(t, stripDateLiterals(implicit), stripDateLiterals(runner.calls[0]))
}

// stripDateLiterals blanks the host-formatted date literals a script embeds
// so two scripts built moments apart can be compared structurally.
func stripDateLiterals(script string) string {
	var b strings.Builder
	inString := false
	for i := 0; i < len(script); i++ {
		c := script[i]
		if c == '"' {
			inString = !inString
			b.WriteByte(c)
			continue
		}
		if inString && (c >= '0' && c <= '9') {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
