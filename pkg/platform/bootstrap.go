package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/txn2/mcp-hub/pkg/hub"
)

// Loader resolves a set of backend descriptions into live registry entries.
type Loader struct {
	registry        *hub.Registry
	baseEnv         []string
	continueOnError bool
	logger          *slog.Logger
	httpClient      *http.Client
}

// NewLoader creates a bootstrap loader driving the given registry.
func NewLoader(registry *hub.Registry, baseEnv []string, cfg BootstrapConfig) *Loader {
	return &Loader{
		registry:        registry,
		baseEnv:         baseEnv,
		continueOnError: cfg.ContinueOnError,
		logger:          slog.Default(),
		httpClient:      http.DefaultClient,
	}
}

// Load connects every backend in the map. Names are connected in lexical
// order so listing order is deterministic across runs. The first failure
// aborts the pass unless continue_on_error is set, in which case failures
// are collected and returned joined.
func (l *Loader) Load(ctx context.Context, backends map[string]BackendConfig) error {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		err := l.registry.Connect(ctx, name, backends[name].Params(l.baseEnv))
		if err == nil {
			l.logger.Info("connected backend", "backend", name)
			continue
		}
		if !l.continueOnError {
			return fmt.Errorf("bootstrapping backend %q: %w", name, err)
		}
		l.logger.Warn("skipping backend", "backend", name, "error", err)
		errs = append(errs, fmt.Errorf("bootstrapping backend %q: %w", name, err))
	}
	return errors.Join(errs...)
}

// LoadRemote fetches a backends description from a URL and connects the
// entries it contains. The document is the same shape as the config file's
// backends section, in YAML or JSON.
func (l *Loader) LoadRemote(ctx context.Context, url string) error {
	backends, err := l.fetchBackends(ctx, url)
	if err != nil {
		return err
	}
	return l.Load(ctx, backends)
}

// fetchBackends retrieves and parses a remote backends description.
func (l *Loader) fetchBackends(ctx context.Context, url string) (map[string]BackendConfig, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building backends request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching backends from %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching backends from %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading backends response: %w", err)
	}

	var backends map[string]BackendConfig
	if err := yaml.Unmarshal(data, &backends); err != nil {
		return nil, fmt.Errorf("parsing backends description: %w", err)
	}
	return backends, nil
}
