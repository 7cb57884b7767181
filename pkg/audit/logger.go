package audit

import (
	"context"
	"log/slog"
)

// SlogLogger writes audit events to a structured logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates an audit logger backed by the given slog logger.
// A nil logger falls back to slog.Default().
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

// Log records an audit event at info level.
func (l *SlogLogger) Log(ctx context.Context, event Event) error {
	l.logger.InfoContext(ctx, "audit",
		"event_id", event.ID,
		"tool", event.ToolName,
		"backend", event.Backend,
		"capability", event.Capability,
		"success", event.Success,
		"error", event.ErrorMessage,
		"duration_ms", event.DurationMS,
	)
	return nil
}

// Close is a no-op for slog-backed logging.
func (l *SlogLogger) Close() error { return nil }

// NoopLogger discards all audit events.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(_ context.Context, _ Event) error { return nil }

// Close is a no-op.
func (NoopLogger) Close() error { return nil }
