package applescript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single script execution. There is no
	// cancellation beyond it; the caller waits for completion or timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxOutput caps the bytes accepted from a script before the
	// run is failed as oversized.
	DefaultMaxOutput = 10 * 1024 * 1024
)

// ErrNotAuthorized reports that macOS has not granted this process
// automation access to the Calendar application. Callers translate it into
// a fixed instructive message; it is never retried.
var ErrNotAuthorized = errors.New("not authorized to access Calendar")

// Runner executes an AppleScript program and returns its trimmed standard
// output. Implementations classify authorization failures as
// ErrNotAuthorized; all other failures carry the underlying message.
type Runner interface {
	Run(ctx context.Context, script string) (string, error)
}

// Osascript runs scripts through the osascript binary.
type Osascript struct {
	// Timeout per execution; DefaultTimeout if zero.
	Timeout time.Duration

	// MaxOutput in bytes; DefaultMaxOutput if zero.
	MaxOutput int64

	Logger *slog.Logger
}

// NewOsascript returns a runner with the default timeout and output cap.
func NewOsascript(logger *slog.Logger) *Osascript {
	if logger == nil {
		logger = slog.Default()
	}
	return &Osascript{
		Timeout:   DefaultTimeout,
		MaxOutput: DefaultMaxOutput,
		Logger:    logger,
	}
}

// Run executes the script and returns trimmed stdout. The error is
// ErrNotAuthorized (wrapped) when the OS rejects the automation request,
// or the underlying failure text otherwise, including timeouts and
// oversized output.
func (o *Osascript) Run(ctx context.Context, script string) (string, error) {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxOutput := o.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "osascript", "-e", script)
	stdout := &cappedBuffer{limit: maxOutput}
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if o.Logger != nil {
		o.Logger.Debug("osascript finished",
			slog.Duration("duration", duration),
			slog.Int("stdout_bytes", stdout.Len()),
			slog.Bool("success", err == nil))
	}

	if stdout.truncated {
		return "", fmt.Errorf("script output exceeds %d bytes", maxOutput)
	}

	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("script timed out after %s", timeout)
		}
		stderrStr := strings.TrimSpace(stderr.String())
		if isAuthorizationError(stderrStr) {
			return "", fmt.Errorf("%w: %s", ErrNotAuthorized, stderrStr)
		}
		if stderrStr != "" {
			return "", fmt.Errorf("%s: %s", err, stderrStr)
		}
		return "", err
	}

	return strings.TrimSpace(stdout.buf.String()), nil
}

var errOutputTooLarge = errors.New("output limit exceeded")

// cappedBuffer rejects writes past its limit. Installed as the process
// stdout, the failed write tears down the pipe copy so an oversized reply
// is never buffered whole. The child typically dies of SIGPIPE after the
// rejected write, so truncated is the reliable overflow signal; the copy
// error may be shadowed by the exit error.
type cappedBuffer struct {
	buf       bytes.Buffer
	limit     int64
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if int64(b.buf.Len())+int64(len(p)) > b.limit {
		b.truncated = true
		return 0, errOutputTooLarge
	}
	return b.buf.Write(p)
}

func (b *cappedBuffer) Len() int { return b.buf.Len() }

// isAuthorizationError recognizes the TCC denial signals: the -1743
// "Not authorized to send Apple events" error and its textual variants.
func isAuthorizationError(stderr string) bool {
	lower := strings.ToLower(stderr)
	return strings.Contains(lower, "not authorized") ||
		strings.Contains(lower, "not authorised") ||
		strings.Contains(stderr, "-1743")
}
