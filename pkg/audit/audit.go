// Package audit provides invocation audit logging for the hub.
package audit

import (
	"context"
	"time"
)

// Logger records audit events.
type Logger interface {
	// Log records an audit event.
	Log(ctx context.Context, event Event) error

	// Close releases resources.
	Close() error
}

// Event represents one audited hub operation.
type Event struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	DurationMS   int64          `json:"duration_ms"`
	ToolName     string         `json:"tool_name"`
	Backend      string         `json:"backend,omitempty"`
	Capability   string         `json:"capability,omitempty"`
	Parameters   map[string]any `json:"parameters,omitempty"`
	Success      bool           `json:"success"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// Config configures audit logging.
type Config struct {
	Enabled bool `yaml:"enabled"`
}
