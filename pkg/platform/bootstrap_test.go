package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/txn2/mcp-hub/pkg/hub"
)

func TestLoader_LoadConnectsInLexicalOrder(t *testing.T) {
	reg := hub.NewRegistry(newFakeDialer())
	loader := NewLoader(reg, nil, BootstrapConfig{})

	backends := map[string]BackendConfig{
		"zeta":  {URL: "http://z"},
		"alpha": {URL: "http://a"},
		"mid":   {URL: "http://m"},
	}
	if err := loader.Load(context.Background(), backends); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"alpha", "mid", "zeta"}
	if got := reg.ListNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("ListNames() = %v, want %v", got, want)
	}
}

func TestLoader_LoadFailFast(t *testing.T) {
	dialer := newFakeDialer()
	dialer.failing["http://b"] = true
	reg := hub.NewRegistry(dialer)
	loader := NewLoader(reg, nil, BootstrapConfig{})

	err := loader.Load(context.Background(), map[string]BackendConfig{
		"a": {URL: "http://a"},
		"b": {URL: "http://b"},
		"c": {URL: "http://c"},
	})
	if err == nil {
		t.Fatal("Load() expected error")
	}
	if !strings.Contains(err.Error(), `"b"`) {
		t.Errorf("Load() error = %v, want failing backend named", err)
	}

	// a connected before the failure, c never attempted.
	want := []string{"a"}
	if got := reg.ListNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("ListNames() = %v, want %v", got, want)
	}
}

func TestLoader_LoadContinueOnError(t *testing.T) {
	dialer := newFakeDialer()
	dialer.failing["http://b"] = true
	reg := hub.NewRegistry(dialer)
	loader := NewLoader(reg, nil, BootstrapConfig{ContinueOnError: true})

	err := loader.Load(context.Background(), map[string]BackendConfig{
		"a": {URL: "http://a"},
		"b": {URL: "http://b"},
		"c": {URL: "http://c"},
	})
	if err == nil {
		t.Fatal("Load() expected joined error")
	}

	want := []string{"a", "c"}
	if got := reg.ListNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("ListNames() = %v, want %v", got, want)
	}
}

func TestLoader_LoadThreadsBaseEnv(t *testing.T) {
	dialer := newFakeDialer()
	reg := hub.NewRegistry(dialer)
	baseEnv := []string{"PATH=/usr/bin"}
	loader := NewLoader(reg, baseEnv, BootstrapConfig{})

	if err := loader.Load(context.Background(), map[string]BackendConfig{
		"proc": {Command: "mcp-files"},
	}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(dialer.baseEnvs) != 1 || !reflect.DeepEqual(dialer.baseEnvs[0], baseEnv) {
		t.Errorf("dialer saw base envs %v, want [%v]", dialer.baseEnvs, baseEnv)
	}
}

func TestLoader_LoadRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`
files:
  command: mcp-files
search:
  url: http://search.internal/mcp
`))
	}))
	defer server.Close()

	reg := hub.NewRegistry(newFakeDialer())
	loader := NewLoader(reg, nil, BootstrapConfig{})

	if err := loader.LoadRemote(context.Background(), server.URL); err != nil {
		t.Fatalf("LoadRemote() error = %v", err)
	}

	want := []string{"files", "search"}
	if got := reg.ListNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("ListNames() = %v, want %v", got, want)
	}
}

func TestLoader_LoadRemoteJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files": {"command": "mcp-files"}}`))
	}))
	defer server.Close()

	reg := hub.NewRegistry(newFakeDialer())
	loader := NewLoader(reg, nil, BootstrapConfig{})

	if err := loader.LoadRemote(context.Background(), server.URL); err != nil {
		t.Fatalf("LoadRemote() error = %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestLoader_LoadRemoteBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	loader := NewLoader(hub.NewRegistry(newFakeDialer()), nil, BootstrapConfig{})
	err := loader.LoadRemote(context.Background(), server.URL)
	if err == nil {
		t.Fatal("LoadRemote() expected error for 404")
	}
}

func TestLoader_LoadRemoteUnparseable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(": not yaml ["))
	}))
	defer server.Close()

	loader := NewLoader(hub.NewRegistry(newFakeDialer()), nil, BootstrapConfig{})
	err := loader.LoadRemote(context.Background(), server.URL)
	if err == nil {
		t.Fatal("LoadRemote() expected error for unparseable body")
	}
}
