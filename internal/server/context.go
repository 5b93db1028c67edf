package server

import (
	"context"
	"sync"

	"github.com/teemow/maccal/internal/calendar"
	"github.com/teemow/maccal/internal/instrumentation"
)

// ServerContext holds the context for the MCP server. Tool invocations are
// independent round trips; the only state shared between them is the
// calendar client (itself stateless) and the instrumentation hooks.
type ServerContext struct {
	ctx            context.Context
	cancel         context.CancelFunc
	calendarClient *calendar.Client
	metrics        *instrumentation.Metrics
	auditLogger    *instrumentation.AuditLogger
	mu             sync.RWMutex
	shutdown       bool
}

// NewServerContext creates a new server context around the given calendar
// client.
func NewServerContext(ctx context.Context, client *calendar.Client) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:            shutdownCtx,
		cancel:         cancel,
		calendarClient: client,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// CalendarClient returns the calendar client.
func (sc *ServerContext) CalendarClient() *calendar.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.calendarClient
}

// SetCalendarClient replaces the calendar client.
func (sc *ServerContext) SetCalendarClient(client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClient = client
}

// Metrics returns the metrics recorder, which may be nil when
// instrumentation is not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// AuditLogger returns the audit logger, which may be nil when audit
// logging is not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger.
func (sc *ServerContext) SetAuditLogger(a *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = a
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
