package platform

import (
	"log/slog"

	"github.com/txn2/mcp-hub/pkg/audit"
	"github.com/txn2/mcp-hub/pkg/backend"
)

// Options configures the platform.
type Options struct {
	// Config is the hub configuration.
	Config *Config

	// Dialer opens backend sessions (optional, an MCP dialer is created
	// from config if not provided).
	Dialer backend.Dialer

	// AuditLogger records invocation audit events (optional, created from
	// config if not provided).
	AuditLogger audit.Logger

	// Logger is the structured logger (optional, slog.Default if not
	// provided).
	Logger *slog.Logger

	// BaseEnv is the environment process backends merge their overlay onto
	// (optional, os.Environ() if not provided).
	BaseEnv []string
}

// Option is a functional option for configuring the platform.
type Option func(*Options)

// WithConfig sets the configuration.
func WithConfig(cfg *Config) Option {
	return func(o *Options) {
		o.Config = cfg
	}
}

// WithDialer sets the backend session dialer.
func WithDialer(dialer backend.Dialer) Option {
	return func(o *Options) {
		o.Dialer = dialer
	}
}

// WithAuditLogger sets the audit logger.
func WithAuditLogger(logger audit.Logger) Option {
	return func(o *Options) {
		o.AuditLogger = logger
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithBaseEnv sets the base environment for process backends.
func WithBaseEnv(env []string) Option {
	return func(o *Options) {
		o.BaseEnv = env
	}
}
