package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/isdalog/isdalog/internal/config"
	"github.com/isdalog/isdalog/internal/metrics"
	"github.com/isdalog/isdalog/internal/store"
)

// logCapture captures slog output for testing
type logCapture struct {
	mu      sync.Mutex
	entries []map[string]any
}

func (c *logCapture) handler() slog.Handler {
	return slog.NewJSONHandler(c, &slog.HandlerOptions{Level: slog.LevelDebug})
}

func (c *logCapture) Write(p []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var entry map[string]any
	if err := json.Unmarshal(p, &entry); err == nil {
		c.entries = append(c.entries, entry)
	}
	return len(p), nil
}

func (c *logCapture) hasMessage(msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e["msg"] == msg {
			return true
		}
	}
	return false
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	capture := &logCapture{}
	oldDefault := slog.Default()
	slog.SetDefault(slog.New(capture.handler()))
	defer slog.SetDefault(oldDefault)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, ln, time.Second) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}

	for _, msg := range []string{"server starting", "shutdown initiated", "shutdown complete"} {
		if !capture.hasMessage(msg) {
			t.Errorf("expected %q log message", msg)
		}
	}
}

func TestServe_ReturnsListenerError(t *testing.T) {
	oldDefault := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer slog.SetDefault(oldDefault)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ln.Close()

	done := make(chan error, 1)
	go func() { done <- serve(context.Background(), &http.Server{}, ln, time.Second) }()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected error from closed listener")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after listener failure")
	}
}

func TestNewRouter_ServesAllSurfaces(t *testing.T) {
	ctx := context.Background()
	pool, err := store.Open(ctx, store.Options{
		Driver: store.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "router.db"),
	})
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	defer pool.Close()

	cfg := &config.Config{Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"}}
	router, err := newRouter(cfg, pool, metrics.New())
	if err != nil {
		t.Fatalf("newRouter: %v", err)
	}

	srv := &http.Server{Handler: router}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go srv.Serve(ln)
	defer srv.Close()
	base := "http://" + ln.Addr().String()

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/", http.StatusOK, "IsdaLog"},
		{"/api/v1/health", http.StatusOK, `"status":"healthy"`},
		{"/css/style.css", http.StatusOK, ""},
		{"/metrics", http.StatusOK, "isdalog_http_request_duration_seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(base + tt.path)
			if err != nil {
				t.Fatalf("GET %s: %v", tt.path, err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if resp.Header.Get("X-Request-Id") == "" {
				t.Error("missing X-Request-Id header")
			}
			if tt.body != "" && !strings.Contains(string(body), tt.body) {
				t.Errorf("body missing %q", tt.body)
			}
		})
	}
}

func TestNewRouter_MetricsDisabled(t *testing.T) {
	ctx := context.Background()
	pool, err := store.Open(ctx, store.Options{
		Driver: store.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "router.db"),
	})
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	defer pool.Close()

	router, err := newRouter(&config.Config{}, pool, metrics.New())
	if err != nil {
		t.Fatalf("newRouter: %v", err)
	}

	srv := &http.Server{Handler: router}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go srv.Serve(ln)
	defer srv.Close()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		t.Error("metrics served while disabled")
	}
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, config.LogConfig{Level: "info", Format: "json"}).Info("hello", "k", "v")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("json logger output = %q", buf.String())
	}

	buf.Reset()
	newLogger(&buf, config.LogConfig{Level: "info", Format: "text"}).Info("hello", "k", "v")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("text logger output = %q", buf.String())
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "warn", Format: "json"})
	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, "kept") {
		t.Error("warn message missing")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
