// Package middleware provides MCP protocol-level middleware for the hub
// server: structured request logging and invocation auditing.
package middleware

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCP method names intercepted by middleware.
const (
	methodToolsCall = "tools/call"
)

// toolNameFromRequest extracts the tool name from a tools/call request.
func toolNameFromRequest(req mcp.Request) string {
	if req == nil {
		return ""
	}
	params, ok := req.GetParams().(*mcp.CallToolParamsRaw)
	if !ok || params == nil {
		return ""
	}
	return params.Name
}

// argumentsFromRequest extracts the arguments map from a tools/call request.
// Returns nil when the arguments are absent or not a JSON object.
func argumentsFromRequest(req mcp.Request) map[string]any {
	if req == nil {
		return nil
	}
	params, ok := req.GetParams().(*mcp.CallToolParamsRaw)
	if !ok || params == nil || len(params.Arguments) == 0 {
		return nil
	}

	var args map[string]any
	if err := json.Unmarshal(params.Arguments, &args); err != nil {
		return nil
	}
	return args
}

// errorMessageFromResult extracts the error text from a failed tool result.
func errorMessageFromResult(result mcp.Result) string {
	callResult, ok := result.(*mcp.CallToolResult)
	if !ok || callResult == nil || !callResult.IsError {
		return ""
	}
	for _, content := range callResult.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			return text.Text
		}
	}
	return "tool call failed"
}
