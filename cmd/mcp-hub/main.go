// Package main provides the entry point for the mcp-hub server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	hubserver "github.com/txn2/mcp-hub/internal/server"
	"github.com/txn2/mcp-hub/pkg/platform"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type serverOptions struct {
	configPath  string
	transport   string
	address     string
	showVersion bool
}

func parseFlags() serverOptions {
	opts := serverOptions{}
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.transport, "transport", "", "Transport type: stdio, http (overrides config)")
	flag.StringVar(&opts.address, "address", "", "Server address for HTTP transport (overrides config)")
	flag.BoolVar(&opts.showVersion, "version", false, "Show version and exit")
	flag.Parse()
	return opts
}

func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx
}

func createPlatform(opts serverOptions) (*platform.Platform, error) {
	if opts.configPath != "" {
		return hubserver.NewWithConfig(opts.configPath)
	}
	return hubserver.NewWithDefaults()
}

func run() error {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("mcp-hub version %s\n", hubserver.Version)
		return nil
	}

	ctx := setupSignalHandler()

	p, err := createPlatform(opts)
	if err != nil {
		return fmt.Errorf("creating platform: %w", err)
	}
	defer func() { _ = p.Close() }()

	if err := p.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrapping backends: %w", err)
	}

	transport, address := resolveServing(p.Config(), opts)
	return startServer(ctx, p, transport, address)
}

// resolveServing picks the transport and address, flags winning over config.
func resolveServing(cfg *platform.Config, opts serverOptions) (transport, address string) {
	transport = cfg.Server.Transport
	if opts.transport != "" {
		transport = opts.transport
	}
	address = cfg.Server.Address
	if opts.address != "" {
		address = opts.address
	}
	return transport, address
}

func startServer(ctx context.Context, p *platform.Platform, transport, address string) error {
	switch transport {
	case "stdio":
		return p.MCPServer().Run(ctx, &mcp.StdioTransport{})
	case "http":
		return serveHTTP(ctx, p, address)
	default:
		return fmt.Errorf("unknown transport: %s", transport)
	}
}

// serveHTTP serves the hub over the Streamable HTTP transport until the
// context is cancelled.
func serveHTTP(ctx context.Context, p *platform.Platform, address string) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return p.MCPServer()
	}, nil)

	srv := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
