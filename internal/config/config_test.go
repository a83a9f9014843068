package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Results.Backend != "sqlite" || cfg.Server.Port != "8080" || cfg.Data.Dir != "data" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: "9090"
results:
  backend: firestore
  mirrorByYear: true
roster:
  cache: redis
  ttl: 30s
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Results.Backend != "firestore" || !cfg.Results.MirrorByYear {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Results.Root != "Results" || cfg.Results.Partition != "EBSU" {
		t.Fatalf("unset fields should keep defaults: %+v", cfg.Results)
	}
	if got := TTLDuration(cfg.Roster.TTL, time.Minute); got != 30*time.Second {
		t.Fatalf("expected 30s ttl, got %v", got)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for empty, got %v", got)
	}
	if got := TTLDuration("soon", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for garbage, got %v", got)
	}
	if got := TTLDuration("0s", time.Minute); got != 0 {
		t.Fatalf("expected explicit zero, got %v", got)
	}
}
