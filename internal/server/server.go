// Package server provides a factory for creating the hub platform.
package server

import (
	"fmt"

	"github.com/txn2/mcp-hub/pkg/platform"
)

// Version is set at build time.
var Version = "dev"

// New creates a platform from the given configuration.
func New(cfg *platform.Config) (*platform.Platform, error) {
	if cfg.Server.Version == "" || cfg.Server.Version == "1.0.0" {
		cfg.Server.Version = Version
	}

	p, err := platform.New(platform.WithConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("creating platform: %w", err)
	}
	return p, nil
}

// NewWithConfig creates a platform from a configuration file path.
func NewWithConfig(configPath string) (*platform.Platform, error) {
	cfg, err := platform.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return New(cfg)
}

// NewWithDefaults creates a platform with default configuration and no
// preconfigured backends; backends are connected at runtime through the
// connect_backend tool.
func NewWithDefaults() (*platform.Platform, error) {
	return New(platform.DefaultConfig())
}
