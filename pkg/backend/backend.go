// Package backend defines the session abstraction the hub routes requests
// through. This package has zero internal dependencies so that pkg/hub (which
// consumes sessions) and the transport implementations (which produce them)
// never import each other.
package backend

import (
	"context"
	"encoding/json"
)

// Kind identifies the transport variant used to reach a backend.
type Kind string

const (
	// KindProcess spawns a child process speaking MCP over stdio.
	KindProcess Kind = "process"

	// KindStreamed connects to a Streamable HTTP MCP endpoint.
	KindStreamed Kind = "streamed"
)

// Params describes how to reach a single backend. Exactly one transport
// variant applies: Command/Args/Env for process backends, URL/Headers for
// streamed backends. When Kind is empty the variant is inferred from the
// presence of Command.
type Params struct {
	Kind Kind `yaml:"kind,omitempty" json:"kind,omitempty"`

	// Process variant.
	Command string            `yaml:"command,omitempty" json:"command,omitempty"`
	Args    []string          `yaml:"args,omitempty" json:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty" json:"env,omitempty"`

	// BaseEnv is the environment the Env overlay merges onto (overlay wins).
	// Callers pass it explicitly, usually os.Environ(), so spawning stays
	// deterministic under test instead of reading ambient process state.
	BaseEnv []string `yaml:"-" json:"-"`

	// Streamed variant.
	URL     string            `yaml:"url,omitempty" json:"url,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
}

// ResolveKind returns the explicit Kind when set, otherwise infers it:
// a launch command implies a process backend, anything else is streamed.
func (p Params) ResolveKind() Kind {
	if p.Kind != "" {
		return p.Kind
	}
	if p.Command != "" {
		return KindProcess
	}
	return KindStreamed
}

// Capability is a single invocable unit reported by a backend. The input
// schema is carried verbatim and never interpreted.
type Capability struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// Session is a live connection to one backend. A session is owned by exactly
// one registry entry and is never shared across backend names.
type Session interface {
	// ListCapabilities queries the backend for its current capability list.
	ListCapabilities(ctx context.Context) ([]Capability, error)

	// Invoke calls a named capability with the given arguments and returns
	// the backend's result payload unmodified.
	Invoke(ctx context.Context, name string, args map[string]any) (any, error)

	// Close tears down the session. Close is best-effort; a session is
	// considered dead once Close returns regardless of the error.
	Close() error
}

// Dialer opens sessions from connection parameters.
type Dialer interface {
	Dial(ctx context.Context, params Params) (Session, error)
}
