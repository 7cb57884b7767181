package platform

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-hub/pkg/hub"
)

// listCapabilitiesInput is the input for the list_capabilities tool.
type listCapabilitiesInput struct {
	Backend string `json:"backend"`
	// Summary trims each capability to name and description, dropping the
	// input schema.
	Summary bool `json:"summary,omitempty"`
}

// getCapabilityInput is the input for the get_capability tool.
type getCapabilityInput struct {
	Backend string `json:"backend"`
	Name    string `json:"name"`
}

// searchCapabilitiesInput is the input for the search_capabilities tool.
type searchCapabilitiesInput struct {
	// Pattern is a Go regular expression, matched case-insensitively unless
	// case_sensitive is set.
	Pattern       string `json:"pattern"`
	Scope         string `json:"scope,omitempty"` // "name", "description", or "both"
	CaseSensitive bool   `json:"case_sensitive,omitempty"`
	// Backend restricts the search to a single backend. When empty, every
	// connected backend is scanned.
	Backend string `json:"backend,omitempty"`
}

// registerCatalogTools registers the capability catalog tools with the MCP
// server.
func (p *Platform) registerCatalogTools() {
	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name:        "list_capabilities",
		Description: "List the capabilities a connected backend currently exposes, full descriptors or name/description summaries.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, in listCapabilitiesInput) (*mcp.CallToolResult, any, error) {
		return p.handleListCapabilities(ctx, in)
	})

	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name:        "get_capability",
		Description: "Get the full descriptor of one capability, including its input schema.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, in getCapabilityInput) (*mcp.CallToolResult, any, error) {
		return p.handleGetCapability(ctx, in)
	})

	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name: "search_capabilities",
		Description: "Search capability names and descriptions by regular expression, across all " +
			"connected backends or one named backend. Backends whose listing fails are reported " +
			"inline without aborting the search.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, in searchCapabilitiesInput) (*mcp.CallToolResult, any, error) {
		return p.handleSearchCapabilities(ctx, in)
	})
}

// handleListCapabilities handles the list_capabilities tool call.
func (p *Platform) handleListCapabilities(ctx context.Context, in listCapabilitiesInput) (*mcp.CallToolResult, any, error) {
	if in.Summary {
		summaries, err := p.catalog.ListCapabilitySummaries(ctx, in.Backend)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(summaries), nil, nil
	}

	caps, err := p.catalog.ListCapabilities(ctx, in.Backend)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(caps), nil, nil
}

// handleGetCapability handles the get_capability tool call.
func (p *Platform) handleGetCapability(ctx context.Context, in getCapabilityInput) (*mcp.CallToolResult, any, error) {
	capability, err := p.catalog.GetCapability(ctx, in.Backend, in.Name)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(capability), nil, nil
}

// handleSearchCapabilities handles the search_capabilities tool call.
func (p *Platform) handleSearchCapabilities(ctx context.Context, in searchCapabilitiesInput) (*mcp.CallToolResult, any, error) {
	spec := hub.SearchSpec{
		Pattern:       in.Pattern,
		Scope:         hub.Scope(in.Scope),
		CaseSensitive: in.CaseSensitive,
	}

	if in.Backend != "" {
		matches, err := p.catalog.SearchBackend(ctx, spec, in.Backend)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(matches), nil, nil
	}

	results, err := p.catalog.Search(ctx, spec)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(results), nil, nil
}
