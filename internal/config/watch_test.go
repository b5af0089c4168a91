package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const twoCustomerYAML = minimalYAML + `
run:
  interval: 6h
`

// startWatch runs Watch against a fresh temp config and returns the file path
// and a channel of applied configs.
func startWatch(t *testing.T) (string, chan *Config) {
	t.Helper()

	old := debounceInterval
	debounceInterval = 10 * time.Millisecond
	t.Cleanup(func() { debounceInterval = old })

	path := filepath.Join(t.TempDir(), "pacewatch.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	applied := make(chan *Config, 4)
	go Watch(ctx, path, func(c *Config) { applied <- c })

	// Give the watcher a moment to arm before the first rewrite.
	time.Sleep(100 * time.Millisecond)
	return path, applied
}

func TestWatch_AppliesRewrite(t *testing.T) {
	path, applied := startWatch(t)

	if err := os.WriteFile(path, []byte(twoCustomerYAML), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case cfg := <-applied:
		if cfg.Run.Interval != 6*time.Hour {
			t.Errorf("interval: got %v, want 6h", cfg.Run.Interval)
		}
		if len(cfg.Customers) != 1 {
			t.Errorf("customers: got %d, want 1", len(cfg.Customers))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("rewrite was never applied")
	}
}

func TestWatch_RejectsInvalidRewrite(t *testing.T) {
	path, applied := startWatch(t)

	// Drops every customer, which validation refuses.
	if err := os.WriteFile(path, []byte("fallback:\n  endpoint: \"https://a\"\n"), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case cfg := <-applied:
		t.Fatalf("invalid rewrite applied: %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}

	// A subsequent valid rewrite still lands; the watcher survived the bad one.
	if err := os.WriteFile(path, []byte(twoCustomerYAML), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	select {
	case cfg := <-applied:
		if cfg.Run.Interval != 6*time.Hour {
			t.Errorf("interval: got %v, want 6h", cfg.Run.Interval)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("valid rewrite after a rejected one was never applied")
	}
}
