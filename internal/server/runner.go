package server

import (
	"context"
	"time"

	"github.com/teemow/maccal/internal/applescript"
	"github.com/teemow/maccal/internal/instrumentation"
)

// instrumentedRunner records one metric sample per osascript round trip.
type instrumentedRunner struct {
	next    applescript.Runner
	metrics *instrumentation.Metrics
}

// NewInstrumentedRunner wraps a runner with script execution metrics.
// A nil metrics recorder returns the runner unwrapped.
func NewInstrumentedRunner(next applescript.Runner, metrics *instrumentation.Metrics) applescript.Runner {
	if metrics == nil {
		return next
	}
	return &instrumentedRunner{next: next, metrics: metrics}
}

func (r *instrumentedRunner) Run(ctx context.Context, script string) (string, error) {
	start := time.Now()
	out, err := r.next.Run(ctx, script)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	r.metrics.RecordScriptExecution(ctx, status, time.Since(start))

	return out, err
}
