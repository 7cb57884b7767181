package platform

import (
	"context"
	"fmt"
	"sync"

	"github.com/txn2/mcp-hub/pkg/backend"
)

// fakeSession is a scriptable backend session for platform tests.
type fakeSession struct {
	mu        sync.Mutex
	caps      []backend.Capability
	listErr   error
	invokeOut any
	invokeErr error
	closed    bool
}

func (f *fakeSession) ListCapabilities(_ context.Context) ([]backend.Capability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.caps, nil
}

func (f *fakeSession) Invoke(_ context.Context, _ string, _ map[string]any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.invokeErr != nil {
		return nil, f.invokeErr
	}
	return f.invokeOut, nil
}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// fakeDialer hands out fakeSessions keyed by URL or command, failing dials
// for keys listed in failing.
type fakeDialer struct {
	mu       sync.Mutex
	sessions map[string]*fakeSession
	failing  map[string]bool
	baseEnvs [][]string
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{
		sessions: make(map[string]*fakeSession),
		failing:  make(map[string]bool),
	}
}

func (d *fakeDialer) Dial(_ context.Context, params backend.Params) (backend.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.baseEnvs = append(d.baseEnvs, params.BaseEnv)

	key := params.URL
	if key == "" {
		key = params.Command
	}
	if d.failing[key] {
		return nil, fmt.Errorf("dial %s: connection refused", key)
	}
	if s, ok := d.sessions[key]; ok {
		return s, nil
	}
	s := &fakeSession{}
	d.sessions[key] = s
	return s, nil
}
