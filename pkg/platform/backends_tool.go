package platform

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-hub/pkg/backend"
)

// connectBackendInput is the input for the connect_backend tool. Kind is
// optional; a command implies a process backend, a url a streamed one.
type connectBackendInput struct {
	Name    string            `json:"name,omitempty"`
	Kind    string            `json:"kind,omitempty"`
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// disconnectBackendInput is the input for the disconnect_backend tool.
type disconnectBackendInput struct {
	Name string `json:"name"`
}

// disconnectAllInput is empty since disconnect_all_backends takes no
// parameters.
type disconnectAllInput struct{}

// listBackendsInput is empty since list_backends takes no parameters.
type listBackendsInput struct{}

// listBackendsOutput is the JSON response for the list_backends tool.
type listBackendsOutput struct {
	Backends []string `json:"backends"`
	Count    int      `json:"count"`
}

// registerBackendTools registers the connection lifecycle tools with the
// MCP server.
func (p *Platform) registerBackendTools() {
	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name: "connect_backend",
		Description: "Connect a named backend MCP server, either by spawning a command " +
			"(stdio) or by URL (streamable HTTP). The name becomes the handle for all " +
			"other hub tools.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in connectBackendInput) (*mcp.CallToolResult, any, error) {
		return p.handleConnectBackend(ctx, in)
	})

	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name:        "disconnect_backend",
		Description: "Disconnect a named backend and remove it from the hub.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in disconnectBackendInput) (*mcp.CallToolResult, any, error) {
		return p.handleDisconnectBackend(ctx, in)
	})

	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name:        "disconnect_all_backends",
		Description: "Disconnect every connected backend. Continues past individual failures.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ disconnectAllInput) (*mcp.CallToolResult, any, error) {
		return p.handleDisconnectAll(ctx)
	})

	mcp.AddTool(p.mcpServer, &mcp.Tool{
		Name:        "list_backends",
		Description: "List connected backends in connection order.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ listBackendsInput) (*mcp.CallToolResult, any, error) {
		return p.handleListBackends(ctx)
	})
}

// handleConnectBackend handles the connect_backend tool call.
func (p *Platform) handleConnectBackend(ctx context.Context, in connectBackendInput) (*mcp.CallToolResult, any, error) {
	if in.Name == "" {
		return toolError(fmt.Errorf("name is required")), nil, nil
	}

	params := backend.Params{
		Kind:    backend.Kind(in.Kind),
		Command: in.Command,
		Args:    in.Args,
		Env:     in.Env,
		BaseEnv: p.baseEnv,
		URL:     in.URL,
		Headers: in.Headers,
	}

	if err := p.registry.Connect(ctx, in.Name, params); err != nil {
		return toolError(err), nil, nil
	}
	return toolText(fmt.Sprintf("Connected backend %q (%s).", in.Name, params.ResolveKind())), nil, nil
}

// handleDisconnectBackend handles the disconnect_backend tool call.
func (p *Platform) handleDisconnectBackend(_ context.Context, in disconnectBackendInput) (*mcp.CallToolResult, any, error) {
	if err := p.registry.Disconnect(in.Name); err != nil {
		return toolError(err), nil, nil
	}
	return toolText(fmt.Sprintf("Disconnected backend %q.", in.Name)), nil, nil
}

// handleDisconnectAll handles the disconnect_all_backends tool call.
func (p *Platform) handleDisconnectAll(_ context.Context) (*mcp.CallToolResult, any, error) {
	count := p.registry.Len()
	if err := p.registry.DisconnectAll(); err != nil {
		return toolError(err), nil, nil
	}
	return toolText(fmt.Sprintf("Disconnected %d backend(s).", count)), nil, nil
}

// handleListBackends handles the list_backends tool call.
func (p *Platform) handleListBackends(_ context.Context) (*mcp.CallToolResult, any, error) {
	names := p.registry.ListNames()
	out := listBackendsOutput{
		Backends: names,
		Count:    len(names),
	}
	return toolJSON(out), nil, nil
}
