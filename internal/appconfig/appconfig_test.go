// internal/appconfig/appconfig_test.go
package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `{
		"seed": "release-2026-08",
		"domains": ["math", "citation"],
		"countPerDomain": 5,
		"gates": {"minAccuracy": 0.7, "minDomainAccuracy": 0.5, "maxOverconfidence": 0.2, "maxEce": 0.15},
		"model": {"name": "local", "url": "http://localhost:11434", "type": "ollama", "model": "llama3.2"},
		"timeout": 30
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != "release-2026-08" {
		t.Fatalf("seed = %q", cfg.Seed)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Fatalf("timeout = %v", cfg.RequestTimeout())
	}
	if cfg.Gates.MinAccuracy != 0.7 {
		t.Fatalf("minAccuracy = %v", cfg.Gates.MinAccuracy)
	}
	domains, err := cfg.DomainTags()
	if err != nil {
		t.Fatal(err)
	}
	if len(domains) != 2 {
		t.Fatalf("domains = %v", domains)
	}
}

func TestLoadRejectsMissingSeed(t *testing.T) {
	path := writeConfig(t, `{"model": {"type": "ollama"}}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing seed")
	}
}

func TestLoadRejectsUnknownDomain(t *testing.T) {
	path := writeConfig(t, `{
		"seed": "s", "domains": ["astrology"],
		"model": {"type": "ollama"}
	}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected schema error for unknown domain")
	}
}

func TestLoadRejectsOutOfRangeGate(t *testing.T) {
	path := writeConfig(t, `{
		"seed": "s",
		"gates": {"minAccuracy": 1.5},
		"model": {"type": "ollama"}
	}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected schema error for minAccuracy > 1")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil || !strings.Contains(err.Error(), "no configuration file") {
		t.Fatalf("err = %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Config{Seed: "s"}
	if cfg.RequestTimeout() != 120*time.Second {
		t.Fatalf("default timeout = %v", cfg.RequestTimeout())
	}
	if cfg.LogFilePath() != "halo.log" {
		t.Fatalf("default log path = %q", cfg.LogFilePath())
	}
	if cfg.ResultsDirPath() != "haloData/runs" {
		t.Fatalf("default results dir = %q", cfg.ResultsDirPath())
	}
	if cfg.Count() != 10 {
		t.Fatalf("default count = %d", cfg.Count())
	}
	if cfg.VerificationTTL() != 24*time.Hour {
		t.Fatalf("default verification TTL = %v", cfg.VerificationTTL())
	}
	domains, err := cfg.DomainTags()
	if err != nil {
		t.Fatal(err)
	}
	if len(domains) != 7 {
		t.Fatalf("empty domain list should mean all 7 domains, got %d", len(domains))
	}
}
