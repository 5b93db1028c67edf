package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSetup(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, false)

	logger.Debug("hidden")
	logger.Info("visible", Tool("calendar_get_events"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record logged at info level")
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "tool=calendar_get_events") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestSetupDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, true)
	logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("debug record missing at debug level")
	}
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	if attr.Key != KeyError || attr.Value.String() != "boom" {
		t.Errorf("Err() = %v", attr)
	}

	nilAttr := Err(nil)
	if !nilAttr.Equal(slog.Group("")) {
		t.Errorf("Err(nil) = %v, expected empty group", nilAttr)
	}
}

func TestWithTool(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	WithTool(base, "calendar_search").Info("searching")
	if !strings.Contains(buf.String(), "tool=calendar_search") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
