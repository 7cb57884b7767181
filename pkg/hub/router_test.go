package hub

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRouter_Invoke(t *testing.T) {
	session := &mockSession{invokeOut: map[string]any{"status": "done"}}
	dialer := newMockDialer()
	dialer.sessions["http://one"] = session

	reg := NewRegistry(dialer)
	ctx := context.Background()
	if err := reg.Connect(ctx, "worker", streamedParams("http://one")); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	payload, err := NewRouter(reg).Invoke(ctx, "worker", "run", map[string]any{"task": "sync"})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	out, ok := payload.(map[string]any)
	if !ok || out["status"] != "done" {
		t.Errorf("Invoke() payload = %v, want backend result unmodified", payload)
	}
}

func TestRouter_InvokeNotConnected(t *testing.T) {
	router := NewRouter(NewRegistry(newMockDialer()))

	_, err := router.Invoke(context.Background(), "ghost", "run", nil)
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("Invoke() error = %v, want ErrNotConnected", err)
	}
}

func TestRouter_InvokeBackendFailure(t *testing.T) {
	session := &mockSession{invokeErr: errors.New("tool exploded")}
	dialer := newMockDialer()
	dialer.sessions["http://one"] = session

	reg := NewRegistry(dialer)
	ctx := context.Background()
	if err := reg.Connect(ctx, "worker", streamedParams("http://one")); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	_, err := NewRouter(reg).Invoke(ctx, "worker", "run", nil)
	if !errors.Is(err, ErrInvocationFailed) {
		t.Fatalf("Invoke() error = %v, want ErrInvocationFailed", err)
	}
	if !strings.Contains(err.Error(), "tool exploded") {
		t.Errorf("Invoke() error = %v, want underlying cause preserved", err)
	}
	if !strings.Contains(err.Error(), "worker") || !strings.Contains(err.Error(), "run") {
		t.Errorf("Invoke() error = %v, want backend and capability names in message", err)
	}
}
