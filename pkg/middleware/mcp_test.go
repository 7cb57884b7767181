package middleware

import (
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createToolCallRequest builds a tools/call request the way the server
// delivers it to receiving middleware.
func createToolCallRequest(t *testing.T, toolName string, args map[string]any) *mcp.ServerRequest[*mcp.CallToolParamsRaw] {
	t.Helper()
	var argsJSON json.RawMessage
	if args != nil {
		var err error
		argsJSON, err = json.Marshal(args)
		require.NoError(t, err)
	}

	return &mcp.ServerRequest[*mcp.CallToolParamsRaw]{
		Params: &mcp.CallToolParamsRaw{
			Name:      toolName,
			Arguments: argsJSON,
		},
	}
}

func TestToolNameFromRequest(t *testing.T) {
	req := createToolCallRequest(t, "invoke_capability", nil)
	assert.Equal(t, "invoke_capability", toolNameFromRequest(req))

	assert.Empty(t, toolNameFromRequest(nil))

	nilParams := &mcp.ServerRequest[*mcp.CallToolParamsRaw]{Params: nil}
	assert.Empty(t, toolNameFromRequest(nilParams))

	otherMethod := &mcp.ServerRequest[*mcp.ListToolsParams]{Params: &mcp.ListToolsParams{}}
	assert.Empty(t, toolNameFromRequest(otherMethod))
}

func TestArgumentsFromRequest(t *testing.T) {
	req := createToolCallRequest(t, "invoke_capability", map[string]any{
		"backend":    "files",
		"capability": "readFile",
	})
	args := argumentsFromRequest(req)
	require.NotNil(t, args)
	assert.Equal(t, "files", args["backend"])
	assert.Equal(t, "readFile", args["capability"])

	assert.Nil(t, argumentsFromRequest(nil))
	assert.Nil(t, argumentsFromRequest(createToolCallRequest(t, "invoke_capability", nil)))

	invalid := &mcp.ServerRequest[*mcp.CallToolParamsRaw]{
		Params: &mcp.CallToolParamsRaw{Name: "x", Arguments: []byte("not json")},
	}
	assert.Nil(t, argumentsFromRequest(invalid))
}

func TestErrorMessageFromResult(t *testing.T) {
	assert.Empty(t, errorMessageFromResult(nil))
	assert.Empty(t, errorMessageFromResult(&mcp.ListToolsResult{}))
	assert.Empty(t, errorMessageFromResult(&mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "fine"}},
	}))

	assert.Equal(t, "boom", errorMessageFromResult(&mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "boom"}},
	}))

	// Error result without text content still reports a failure.
	assert.Equal(t, "tool call failed", errorMessageFromResult(&mcp.CallToolResult{IsError: true}))
}
