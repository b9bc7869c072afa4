package httpserver

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"
)

type testLogger struct {
	logs []string
}

func (l *testLogger) Printf(format string, args ...any) {
	l.logs = append(l.logs, format)
}

func TestNewAppliesDefaults(t *testing.T) {
	srv, err := New(Config{Port: ":8080"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.httpServer == nil || srv.httpServer.Handler == nil {
		t.Fatalf("expected default handler to be applied")
	}
	if srv.Addr != defaultAddr || srv.ReadTimeout != defaultReadTimeout {
		t.Fatalf("expected defaults, got %s %s", srv.Addr, srv.ReadTimeout)
	}
	if srv.ListenAddr() != nil {
		t.Fatalf("expected no listener before start")
	}
}

func TestNewRequiresPort(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error when port missing")
	}
}

func waitForListener(t *testing.T, srv *Server) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for srv.ListenAddr() == nil {
		if time.Now().After(deadline) {
			t.Fatal("server failed to start")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return "http://" + srv.ListenAddr().String()
}

func TestListenAndServeWithDefaultHandler(t *testing.T) {
	srv, err := New(Config{Port: ":0", Logger: &testLogger{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe() }()

	resp, err := http.Get(waitForListener(t, srv))
	if err != nil {
		t.Fatalf("failed to query server: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK || string(body) != "OK" {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, body)
	}

	if err := srv.Close(); err != nil {
		t.Fatalf("close server: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("listen returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestShutdownStopsServer(t *testing.T) {
	srv, err := New(Config{Port: ":0", Logger: &testLogger{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe() }()
	waitForListener(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("listen returned error: %v", err)
	}
}
