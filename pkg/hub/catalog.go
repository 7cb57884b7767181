package hub

import (
	"context"
	"fmt"
	"regexp"

	"github.com/txn2/mcp-hub/pkg/backend"
)

// Catalog aggregates capability listings across registered backends. Every
// listing call re-queries the live session; nothing is cached.
type Catalog struct {
	registry *Registry
}

// NewCatalog creates a catalog over the given registry.
func NewCatalog(registry *Registry) *Catalog {
	return &Catalog{registry: registry}
}

// Summary is the name and description projection of a capability.
type Summary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Scope selects which capability fields a search pattern is matched against.
type Scope string

const (
	// ScopeName matches against capability names only.
	ScopeName Scope = "name"

	// ScopeDescription matches against capability descriptions only.
	ScopeDescription Scope = "description"

	// ScopeBoth matches against names and descriptions. This is the default
	// when the scope is left empty.
	ScopeBoth Scope = "both"
)

// SearchSpec describes a capability search. The pattern uses Go regexp
// syntax and matches case-insensitively unless CaseSensitive is set.
type SearchSpec struct {
	Pattern       string `json:"pattern"`
	Scope         Scope  `json:"scope,omitempty"`
	CaseSensitive bool   `json:"case_sensitive,omitempty"`
}

// BackendResult is one backend's slot in a multi-backend search result:
// either its matches or a single error marker when its listing call failed.
type BackendResult struct {
	Matches []Summary `json:"matches,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// SearchResults maps backend names to their search outcome. Backends with
// zero matches are omitted.
type SearchResults map[string]BackendResult

// ListCapabilities returns the named backend's current capability list,
// full descriptors included, exactly as the backend reports it.
func (c *Catalog) ListCapabilities(ctx context.Context, name string) ([]backend.Capability, error) {
	session, err := c.registry.Get(name)
	if err != nil {
		return nil, err
	}

	caps, err := session.ListCapabilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing capabilities for backend %q: %w", name, err)
	}
	return caps, nil
}

// ListCapabilitySummaries returns the named backend's capabilities projected
// down to name and description. A backend reporting zero capabilities yields
// an empty slice, not an error.
func (c *Catalog) ListCapabilitySummaries(ctx context.Context, name string) ([]Summary, error) {
	caps, err := c.ListCapabilities(ctx, name)
	if err != nil {
		return nil, err
	}
	return summarize(caps), nil
}

// GetCapability returns the full descriptor for a single capability. The
// match is exact and case-sensitive; with duplicate names the first listed
// descriptor wins.
func (c *Catalog) GetCapability(ctx context.Context, name, capabilityName string) (backend.Capability, error) {
	caps, err := c.ListCapabilities(ctx, name)
	if err != nil {
		return backend.Capability{}, err
	}

	for _, capability := range caps {
		if capability.Name == capabilityName {
			return capability, nil
		}
	}
	return backend.Capability{}, fmt.Errorf("backend %q has no capability %q: %w", name, capabilityName, ErrCapabilityNotFound)
}

// Search scans every registered backend for capabilities matching spec, in
// connect order. A backend whose listing call fails gets an error marker in
// its slot instead of aborting the scan, so one broken backend cannot hide
// matches from the others. Backends with zero matches are omitted.
func (c *Catalog) Search(ctx context.Context, spec SearchSpec) (SearchResults, error) {
	re, err := compilePattern(spec)
	if err != nil {
		return nil, err
	}

	results := make(SearchResults)
	for _, name := range c.registry.ListNames() {
		session, err := c.registry.Get(name)
		if err != nil {
			// Disconnected between the name snapshot and the query; it is no
			// longer a candidate.
			continue
		}

		caps, err := session.ListCapabilities(ctx)
		if err != nil {
			results[name] = BackendResult{Error: err.Error()}
			continue
		}

		if matches := matchCapabilities(re, spec.Scope, caps); len(matches) > 0 {
			results[name] = BackendResult{Matches: matches}
		}
	}
	return results, nil
}

// SearchBackend scans a single backend for capabilities matching spec and
// returns the matches as a plain sequence. Unlike the multi-backend scan, a
// listing failure here is a real error.
func (c *Catalog) SearchBackend(ctx context.Context, spec SearchSpec, name string) ([]Summary, error) {
	re, err := compilePattern(spec)
	if err != nil {
		return nil, err
	}

	caps, err := c.ListCapabilities(ctx, name)
	if err != nil {
		return nil, err
	}
	return matchCapabilities(re, spec.Scope, caps), nil
}

// compilePattern compiles the search pattern, applying the case sensitivity
// flag. Compilation happens before any backend is queried so an invalid
// pattern never touches a session.
func compilePattern(spec SearchSpec) (*regexp.Regexp, error) {
	pattern := spec.Pattern
	if !spec.CaseSensitive {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return re, nil
}

func matchCapabilities(re *regexp.Regexp, scope Scope, caps []backend.Capability) []Summary {
	if scope == "" {
		scope = ScopeBoth
	}

	var matches []Summary
	for _, capability := range caps {
		nameHit := (scope == ScopeName || scope == ScopeBoth) &&
			capability.Name != "" && re.MatchString(capability.Name)
		descHit := (scope == ScopeDescription || scope == ScopeBoth) &&
			capability.Description != "" && re.MatchString(capability.Description)
		if nameHit || descHit {
			matches = append(matches, Summary{Name: capability.Name, Description: capability.Description})
		}
	}
	return matches
}

func summarize(caps []backend.Capability) []Summary {
	summaries := make([]Summary, 0, len(caps))
	for _, capability := range caps {
		summaries = append(summaries, Summary{Name: capability.Name, Description: capability.Description})
	}
	return summaries
}
