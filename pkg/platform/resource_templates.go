package platform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yosida95/uritemplate/v3"
)

// capabilitiesTemplateURI addresses one backend's live capability listing.
const capabilitiesTemplateURI = "backend://{name}/capabilities"

// registerResourceTemplates registers the hub's MCP resource templates.
func (p *Platform) registerResourceTemplates() {
	p.mcpServer.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: capabilitiesTemplateURI,
		Name:        "Backend Capabilities",
		Description: "Live capability listing of a connected backend, full descriptors included",
		MIMEType:    "application/json",
	}, p.handleCapabilitiesResource)
}

// parseTemplateVars extracts named variables from a URI using a URI template.
// Returns a map of variable names to their values, or an error if the URI
// doesn't match the template.
func parseTemplateVars(templateStr, uri string) (map[string]string, error) {
	tmpl, err := uritemplate.New(templateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid template %q: %w", templateStr, err)
	}

	match := tmpl.Match(uri)
	if match == nil {
		return nil, fmt.Errorf("uri %q does not match template %q", uri, templateStr)
	}

	result := make(map[string]string)
	for _, name := range tmpl.Varnames() {
		val := match.Get(name)
		result[name] = val.String()
	}
	return result, nil
}

// handleCapabilitiesResource handles backend://{name}/capabilities requests.
func (p *Platform) handleCapabilitiesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	vars, err := parseTemplateVars(capabilitiesTemplateURI, uri)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(uri) //nolint:wrapcheck // MCP protocol error returned as-is for SDK type matching
	}

	name := vars["name"]
	if name == "" {
		return nil, mcp.ResourceNotFoundError(uri) //nolint:wrapcheck // MCP protocol error returned as-is for SDK type matching
	}

	caps, err := p.catalog.ListCapabilities(ctx, name)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(uri) //nolint:wrapcheck // MCP protocol error returned as-is for SDK type matching
	}

	return marshalResourceResult(uri, caps)
}

// marshalResourceResult marshals a value to JSON and wraps it in a ReadResourceResult.
func marshalResourceResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
