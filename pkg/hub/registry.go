// Package hub implements the backend connection registry and the request
// routing layer over it: session lifecycle, capability catalog aggregation,
// and invocation dispatch with a shared failure taxonomy.
package hub

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/txn2/mcp-hub/pkg/backend"
)

// Registry owns the mapping from backend name to live session and mediates
// the connect/disconnect lifecycle. At most one session exists per name.
type Registry struct {
	dialer backend.Dialer

	mu       sync.RWMutex
	sessions map[string]backend.Session
	order    []string

	// One mutex per backend name, held for the full duration of a lifecycle
	// mutation so connect and disconnect for the same name never interleave.
	// Slots are never removed; the set of names a deployment uses is small.
	slotMu sync.Mutex
	slots  map[string]*sync.Mutex
}

// NewRegistry creates a registry that opens sessions with the given dialer.
func NewRegistry(dialer backend.Dialer) *Registry {
	return &Registry{
		dialer:   dialer,
		sessions: make(map[string]backend.Session),
		slots:    make(map[string]*sync.Mutex),
	}
}

// slot returns the lifecycle mutex for a backend name.
func (r *Registry) slot(name string) *sync.Mutex {
	r.slotMu.Lock()
	defer r.slotMu.Unlock()

	s, ok := r.slots[name]
	if !ok {
		s = &sync.Mutex{}
		r.slots[name] = s
	}
	return s
}

// Connect validates params, opens a session, and registers it under name.
// The registry is left unchanged on any failure. Connect blocks for the
// duration of process launch or HTTP connection setup.
func (r *Registry) Connect(ctx context.Context, name string, params backend.Params) error {
	slot := r.slot(name)
	slot.Lock()
	defer slot.Unlock()

	r.mu.RLock()
	_, exists := r.sessions[name]
	r.mu.RUnlock()
	if exists {
		return fmt.Errorf("backend %q: %w", name, ErrAlreadyConnected)
	}

	if err := validateParams(params); err != nil {
		return fmt.Errorf("backend %q: %w", name, err)
	}

	session, err := r.dialer.Dial(ctx, params)
	if err != nil {
		return fmt.Errorf("backend %q: %w: %w", name, ErrConnectionFailed, err)
	}

	r.mu.Lock()
	r.sessions[name] = session
	r.order = append(r.order, name)
	r.mu.Unlock()
	return nil
}

// Disconnect closes the named session and removes it from the registry.
// Close is best-effort: the entry is removed even when close fails, so a
// misbehaving backend cannot leave a zombie entry behind.
func (r *Registry) Disconnect(name string) error {
	slot := r.slot(name)
	slot.Lock()
	defer slot.Unlock()

	r.mu.Lock()
	session, ok := r.sessions[name]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("backend %q: %w", name, ErrNotConnected)
	}
	delete(r.sessions, name)
	r.order = removeName(r.order, name)
	r.mu.Unlock()

	if err := session.Close(); err != nil {
		return fmt.Errorf("backend %q: %w: %w", name, ErrDisconnectFailed, err)
	}
	return nil
}

// DisconnectAll disconnects every registered backend in connect order. It
// continues past individual failures and returns them joined, so one
// misbehaving backend cannot block teardown of the rest.
func (r *Registry) DisconnectAll() error {
	var errs []error
	for _, name := range r.ListNames() {
		if err := r.Disconnect(name); err != nil && !errors.Is(err, ErrNotConnected) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ListNames returns the registered backend names in connect order.
func (r *Registry) ListNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Get returns the live session for a backend name.
func (r *Registry) Get(name string) (backend.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[name]
	if !ok {
		return nil, fmt.Errorf("backend %q: %w", name, ErrNotConnected)
	}
	return session, nil
}

// Len returns the number of registered backends.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// validateParams checks the transport variant requirements from the
// connection parameters before any session is opened.
func validateParams(params backend.Params) error {
	switch kind := params.ResolveKind(); kind {
	case backend.KindProcess:
		if params.Command == "" {
			return ErrMissingCommand
		}
	case backend.KindStreamed:
		if params.URL == "" {
			return ErrMissingURL
		}
		u, err := url.Parse(params.URL)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidURL, params.URL, err)
		}
		if !u.IsAbs() {
			return fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, params.URL)
		}
	default:
		return fmt.Errorf("unknown backend kind %q", kind)
	}
	return nil
}

func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}
