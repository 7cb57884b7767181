package platform

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// invokeCapabilityInput is the input for the invoke_capability tool.
// Arguments are forwarded to the backend unvalidated; its own schema
// applies.
type invokeCapabilityInput struct {
	Backend    string         `json:"backend"`
	Capability string         `json:"capability"`
	Arguments  map[string]any `json:"arguments,omitempty"`
}

// registerInvokeTool registers the invoke_capability tool with the MCP
// server.
func (p *Platform) registerInvokeTool() {
	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name:        "invoke_capability",
		Description: "Invoke a capability on a connected backend and return its result verbatim.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in invokeCapabilityInput) (*mcp.CallToolResult, any, error) {
		return p.handleInvokeCapability(ctx, in)
	})
}

// handleInvokeCapability handles the invoke_capability tool call. When the
// backend speaks MCP the payload already is a tool result and is passed
// through untouched, error flag included.
func (p *Platform) handleInvokeCapability(ctx context.Context, in invokeCapabilityInput) (*mcp.CallToolResult, any, error) {
	payload, err := p.router.Invoke(ctx, in.Backend, in.Capability, in.Arguments)
	if err != nil {
		return toolError(err), nil, nil
	}

	if result, ok := payload.(*mcp.CallToolResult); ok {
		return result, nil, nil
	}
	return toolJSON(payload), nil, nil
}
