package platform

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Info contains information about the hub deployment.
type Info struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description,omitempty"`
	Backends    []string `json:"backends"`
	Features    Features `json:"features"`
}

// Features describes enabled hub features.
type Features struct {
	AuditLogging    bool `json:"audit_logging"`
	RemoteBootstrap bool `json:"remote_bootstrap"`
}

// hubInfoInput is empty since this tool has no parameters.
type hubInfoInput struct{}

// registerInfoTool registers the hub_info tool with the MCP server.
func (p *Platform) registerInfoTool() {
	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name:        "hub_info",
		Description: p.buildInfoToolDescription(),
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ hubInfoInput) (*mcp.CallToolResult, any, error) {
		return p.handleInfo(ctx)
	})
}

// buildInfoToolDescription builds a dynamic tool description based on
// configuration.
func (p *Platform) buildInfoToolDescription() string {
	base := "Get information about this MCP hub"
	if p.config.Server.Name != "" && p.config.Server.Name != "mcp-hub" {
		base = fmt.Sprintf("Get information about %s", p.config.Server.Name)
	}
	return base + ", including its connected backends and enabled features. " +
		"Call this first to see which backends are available."
}

// handleInfo handles the hub_info tool call.
func (p *Platform) handleInfo(_ context.Context) (*mcp.CallToolResult, any, error) {
	info := Info{
		Name:        p.config.Server.Name,
		Version:     p.config.Server.Version,
		Description: p.config.Server.Description,
		Backends:    p.registry.ListNames(),
		Features: Features{
			AuditLogging:    p.config.Audit.Enabled,
			RemoteBootstrap: p.config.BackendsURL != "",
		},
	}
	return toolJSON(info), nil, nil
}
