package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/txn2/mcp-hub/pkg/platform"
)

func TestNew_InjectsBuildVersion(t *testing.T) {
	cfg := platform.DefaultConfig()
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := p.Config().Server.Version; got != Version {
		t.Errorf("Server.Version = %q, want build version %q", got, Version)
	}
}

func TestNew_KeepsExplicitVersion(t *testing.T) {
	cfg := platform.DefaultConfig()
	cfg.Server.Version = "2.3.4"
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := p.Config().Server.Version; got != "2.3.4" {
		t.Errorf("Server.Version = %q, want 2.3.4", got)
	}
}

func TestNewWithConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  name: custom-hub
`)
	if err := os.WriteFile(configPath, content, 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	p, err := NewWithConfig(configPath)
	if err != nil {
		t.Fatalf("NewWithConfig() error = %v", err)
	}
	if got := p.Config().Server.Name; got != "custom-hub" {
		t.Errorf("Server.Name = %q, want custom-hub", got)
	}
}

func TestNewWithConfig_MissingFile(t *testing.T) {
	_, err := NewWithConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("NewWithConfig() expected error for missing file")
	}
}

func TestNewWithDefaults(t *testing.T) {
	p, err := NewWithDefaults()
	if err != nil {
		t.Fatalf("NewWithDefaults() error = %v", err)
	}
	if p.Registry().Len() != 0 {
		t.Errorf("Registry().Len() = %d, want 0", p.Registry().Len())
	}
	if p.MCPServer() == nil {
		t.Error("MCPServer() = nil")
	}
}
