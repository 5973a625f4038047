package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.RefreshInterval.Std() != 10*time.Minute {
		t.Errorf("RefreshInterval = %v, want 10m", cfg.RefreshInterval)
	}
	if cfg.Upstream.Endpoint == "" {
		t.Error("default upstream endpoint should be set")
	}
	if cfg.Upstream.Timeout.Std() != 15*time.Second {
		t.Errorf("Upstream.Timeout = %v, want 15s", cfg.Upstream.Timeout)
	}
}

func TestLoadParsesFileAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: 9090
upstream:
  host: example.hashnode.dev
refresh_interval: 5m
moderators:
  - alice
  - bob
merge_on_refresh: true
pinned_first: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Upstream.Host != "example.hashnode.dev" {
		t.Errorf("Upstream.Host = %q", cfg.Upstream.Host)
	}
	if cfg.RefreshInterval.Std() != 5*time.Minute {
		t.Errorf("RefreshInterval = %v, want 5m", cfg.RefreshInterval)
	}
	if len(cfg.Moderators) != 2 || cfg.Moderators[0] != "alice" {
		t.Errorf("Moderators = %v", cfg.Moderators)
	}
	if !cfg.MergeOnRefresh || !cfg.PinnedFirst {
		t.Error("behavior flags should be parsed")
	}

	// Omitted fields still get defaults.
	if cfg.Upstream.Timeout.Std() != 15*time.Second {
		t.Errorf("Upstream.Timeout = %v, want default 15s", cfg.Upstream.Timeout)
	}
	if cfg.Upstream.Endpoint == "" {
		t.Error("omitted endpoint should fall back to default")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: [not a number"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestAdminTokenEnvOverride(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("admin_token: from-file\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.AdminToken != "from-env" {
		t.Errorf("AdminToken = %q, want env override", cfg.AdminToken)
	}
}
