package hub

import (
	"context"
	"fmt"
)

// Router dispatches invocation requests to the session registered for a
// backend name. It does not retry, does not time out on its own, and never
// interprets the result payload.
type Router struct {
	registry *Registry
}

// NewRouter creates a router over the given registry.
func NewRouter(registry *Registry) *Router {
	return &Router{registry: registry}
}

// Invoke forwards a capability call to the named backend's session and
// returns its result payload unmodified. Arguments are passed through
// unvalidated; schema enforcement, if any, is the backend's job.
func (rt *Router) Invoke(ctx context.Context, name, capabilityName string, args map[string]any) (any, error) {
	session, err := rt.registry.Get(name)
	if err != nil {
		return nil, err
	}

	payload, err := session.Invoke(ctx, capabilityName, args)
	if err != nil {
		return nil, fmt.Errorf("backend %q capability %q: %w: %w", name, capabilityName, ErrInvocationFailed, err)
	}
	return payload, nil
}
