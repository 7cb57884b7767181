// Package platform provides the main hub orchestration: configuration,
// bootstrap, and the MCP server surface over the connection registry.
package platform

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/txn2/mcp-hub/pkg/audit"
	"github.com/txn2/mcp-hub/pkg/backend"
)

// Config holds the complete hub configuration.
type Config struct {
	Server      ServerConfig             `yaml:"server"`
	Backends    map[string]BackendConfig `yaml:"backends"`
	BackendsURL string                   `yaml:"backends_url"`
	Bootstrap   BootstrapConfig          `yaml:"bootstrap"`
	Audit       audit.Config             `yaml:"audit"`
}

// ServerConfig configures the hub's own MCP server.
type ServerConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	Transport   string `yaml:"transport"` // "stdio", "http"
	Address     string `yaml:"address"`
}

// BackendConfig describes one backend to connect at startup.
type BackendConfig struct {
	Kind    string            `yaml:"kind,omitempty"`
	Command string            `yaml:"command,omitempty"`
	Args    []string          `yaml:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	URL     string            `yaml:"url,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

// Params converts the backend entry to connection parameters, threading in
// the base environment process backends merge their overlay onto.
func (b BackendConfig) Params(baseEnv []string) backend.Params {
	return backend.Params{
		Kind:    backend.Kind(b.Kind),
		Command: b.Command,
		Args:    b.Args,
		Env:     b.Env,
		BaseEnv: baseEnv,
		URL:     b.URL,
		Headers: b.Headers,
	}
}

// BootstrapConfig configures the startup connection pass.
type BootstrapConfig struct {
	// ContinueOnError keeps connecting remaining backends when one fails,
	// returning the failures joined at the end.
	ContinueOnError bool `yaml:"continue_on_error"`
}

// LoadConfig loads configuration from a file.
// The path is expected to come from command line arguments, controlled by the operator.
func LoadConfig(path string) (*Config, error) {
	// #nosec G304 -- path is from CLI args, controlled by operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	data = []byte(expandEnvVars(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// DefaultConfig returns a config with defaults applied and no backends.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// expandEnvVars expands ${VAR} patterns in the string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// applyDefaults applies default values to the config.
func applyDefaults(cfg *Config) {
	if cfg.Server.Name == "" {
		cfg.Server.Name = "mcp-hub"
	}
	if cfg.Server.Version == "" {
		cfg.Server.Version = "1.0.0"
	}
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = "stdio"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
}
