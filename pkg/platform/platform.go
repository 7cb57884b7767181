package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-hub/pkg/audit"
	"github.com/txn2/mcp-hub/pkg/backend"
	"github.com/txn2/mcp-hub/pkg/hub"
	"github.com/txn2/mcp-hub/pkg/middleware"
)

// Platform is the main hub facade: the connection registry, the catalog and
// router over it, and the MCP server that exposes them as tools.
type Platform struct {
	config *Config

	// Core components
	registry *hub.Registry
	catalog  *hub.Catalog
	router   *hub.Router

	dialer      backend.Dialer
	auditLogger audit.Logger
	logger      *slog.Logger
	baseEnv     []string

	mcpServer *mcp.Server
}

// New creates a new platform instance.
func New(opts ...Option) (*Platform, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Config == nil {
		return nil, fmt.Errorf("config is required")
	}

	p := &Platform{config: options.Config}
	p.initializeComponents(options)
	p.finalizeSetup()

	return p, nil
}

// initializeComponents initializes the dialer, registry, and audit logger.
func (p *Platform) initializeComponents(opts *Options) {
	p.logger = opts.Logger
	if p.logger == nil {
		p.logger = slog.Default()
	}

	p.baseEnv = opts.BaseEnv
	if p.baseEnv == nil {
		p.baseEnv = os.Environ()
	}

	p.dialer = opts.Dialer
	if p.dialer == nil {
		p.dialer = backend.NewMCPDialer(p.config.Server.Name, p.config.Server.Version)
	}

	p.registry = hub.NewRegistry(p.dialer)
	p.catalog = hub.NewCatalog(p.registry)
	p.router = hub.NewRouter(p.registry)

	p.auditLogger = opts.AuditLogger
	if p.auditLogger == nil {
		if p.config.Audit.Enabled {
			p.auditLogger = audit.NewSlogLogger(p.logger)
		} else {
			p.auditLogger = audit.NoopLogger{}
		}
	}
}

// finalizeSetup builds the MCP server, attaches middleware, and registers
// the hub tool surface.
func (p *Platform) finalizeSetup() {
	p.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    p.config.Server.Name,
		Version: p.config.Server.Version,
	}, nil)

	p.mcpServer.AddReceivingMiddleware(middleware.MCPToolLoggingMiddleware(p.logger))
	if p.config.Audit.Enabled {
		p.mcpServer.AddReceivingMiddleware(middleware.MCPAuditMiddleware(p.auditLogger))
	}

	p.registerBackendTools()
	p.registerCatalogTools()
	p.registerInvokeTool()
	p.registerInfoTool()
	p.registerResourceTemplates()
}

// Bootstrap connects the backends named in the configuration: the inline
// backends section first, then the remote description if backends_url is
// set.
func (p *Platform) Bootstrap(ctx context.Context) error {
	loader := NewLoader(p.registry, p.baseEnv, p.config.Bootstrap)
	loader.logger = p.logger

	if len(p.config.Backends) > 0 {
		if err := loader.Load(ctx, p.config.Backends); err != nil {
			return err
		}
	}
	if p.config.BackendsURL != "" {
		if err := loader.LoadRemote(ctx, p.config.BackendsURL); err != nil {
			return err
		}
	}
	return nil
}

// MCPServer returns the MCP server.
func (p *Platform) MCPServer() *mcp.Server {
	return p.mcpServer
}

// Registry returns the connection registry.
func (p *Platform) Registry() *hub.Registry {
	return p.registry
}

// Catalog returns the capability catalog.
func (p *Platform) Catalog() *hub.Catalog {
	return p.catalog
}

// Router returns the invocation router.
func (p *Platform) Router() *hub.Router {
	return p.router
}

// Config returns the platform configuration.
func (p *Platform) Config() *Config {
	return p.config
}

// Close disconnects all backends and releases platform resources.
func (p *Platform) Close() error {
	var errs []error

	if err := p.registry.DisconnectAll(); err != nil {
		errs = append(errs, err)
	}
	if err := p.auditLogger.Close(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing platform: %w", err)
	}
	return nil
}
