package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/exec"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPDialer opens MCP sessions over the transport selected by Params:
// a spawned stdio child process or a Streamable HTTP connection.
type MCPDialer struct {
	// Name and Version identify this client to backends during the MCP
	// handshake.
	Name    string
	Version string

	// HTTPClient is the base client for streamed backends. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
}

// NewMCPDialer creates a dialer identifying itself with the given client
// name and version.
func NewMCPDialer(name, version string) *MCPDialer {
	return &MCPDialer{Name: name, Version: version}
}

// Dial opens a session to the backend described by params. The returned
// session wraps a live MCP client session; the caller owns it and must
// Close it.
func (d *MCPDialer) Dial(ctx context.Context, params Params) (Session, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: d.Name, Version: d.Version}, nil)

	var transport mcp.Transport
	kind := params.ResolveKind()
	switch kind {
	case KindProcess:
		// Not CommandContext: the child must outlive the dial context and
		// is terminated when the session closes.
		cmd := exec.Command(params.Command, params.Args...) // #nosec G204 -- command comes from operator-controlled config
		cmd.Env = MergeEnv(params.BaseEnv, params.Env)
		transport = &mcp.CommandTransport{Command: cmd}
	case KindStreamed:
		transport = &mcp.StreamableClientTransport{
			Endpoint:   params.URL,
			HTTPClient: d.httpClient(params.Headers),
		}
	default:
		return nil, fmt.Errorf("unknown backend kind %q", kind)
	}

	cs, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting %s backend: %w", kind, err)
	}

	return &mcpSession{cs: cs}, nil
}

// httpClient returns the base HTTP client, wrapped so that the header
// overlay is attached to every outbound exchange.
func (d *MCPDialer) httpClient(headers map[string]string) *http.Client {
	base := d.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}
	if len(headers) == 0 {
		return base
	}

	baseTransport := base.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}

	wrapped := *base
	wrapped.Transport = &headerRoundTripper{headers: headers, base: baseTransport}
	return &wrapped
}

// headerRoundTripper applies a fixed header overlay to every request.
type headerRoundTripper struct {
	headers map[string]string
	base    http.RoundTripper
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}
	resp, err := h.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}
	return resp, nil
}

// mcpSession adapts an MCP client session to the hub's Session interface.
type mcpSession struct {
	cs *mcp.ClientSession
}

func (s *mcpSession) ListCapabilities(ctx context.Context) ([]Capability, error) {
	result, err := s.cs.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		return nil, fmt.Errorf("listing tools: %w", err)
	}

	caps := make([]Capability, 0, len(result.Tools))
	for _, tool := range result.Tools {
		schema, err := rawSchema(tool.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("encoding schema for tool %q: %w", tool.Name, err)
		}
		caps = append(caps, Capability{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: schema,
		})
	}
	return caps, nil
}

// rawSchema carries a tool's reported input schema over as raw JSON. The
// schema is data, never interpreted, so it is re-encoded verbatim.
func rawSchema(schema any) (json.RawMessage, error) {
	if schema == nil {
		return nil, nil
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *mcpSession) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	result, err := s.cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return nil, fmt.Errorf("calling tool %q: %w", name, err)
	}
	return result, nil
}

func (s *mcpSession) Close() error {
	if err := s.cs.Close(); err != nil {
		return fmt.Errorf("closing session: %w", err)
	}
	return nil
}

// MergeEnv merges an overlay onto a base environment of KEY=VALUE entries.
// Overlay entries win on conflict and are appended in sorted key order so
// the result is deterministic.
func MergeEnv(base []string, overlay map[string]string) []string {
	if len(overlay) == 0 {
		return base
	}

	merged := make([]string, 0, len(base)+len(overlay))
	for _, entry := range base {
		key, _, ok := strings.Cut(entry, "=")
		if ok {
			if _, shadowed := overlay[key]; shadowed {
				continue
			}
		}
		merged = append(merged, entry)
	}

	keys := make([]string, 0, len(overlay))
	for k := range overlay {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		merged = append(merged, k+"="+overlay[k])
	}
	return merged
}
