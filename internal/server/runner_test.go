package server

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/maccal/internal/instrumentation"
)

type recordingRunner struct {
	out   string
	err   error
	calls int
}

func (r *recordingRunner) Run(_ context.Context, _ string) (string, error) {
	r.calls++
	return r.out, r.err
}

func TestNewInstrumentedRunner_NilMetricsPassthrough(t *testing.T) {
	next := &recordingRunner{out: "3"}
	runner := NewInstrumentedRunner(next, nil)
	assert.Same(t, next, runner.(*recordingRunner))
}

func TestInstrumentedRunner_Run(t *testing.T) {
	next := &recordingRunner{out: "3"}
	runner := NewInstrumentedRunner(next, &instrumentation.Metrics{})

	out, err := runner.Run(context.Background(), "return 3")
	require.NoError(t, err)
	assert.Equal(t, "3", out)
	assert.Equal(t, 1, next.calls)

	next.err = errors.New("execution error")
	_, err = runner.Run(context.Background(), "return 3")
	assert.Error(t, err)
	assert.Equal(t, 2, next.calls)
}
