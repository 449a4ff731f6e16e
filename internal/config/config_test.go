// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, duration parsing, and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
participant:
  id: "sqltools.backup"
  name: "SQL Backup Tools"
  hide_ui_context_key: "sqltools.hideUi"

discovery:
  manifest_dir: "/etc/urimux/manifests"

journal:
  path: "./journal.db"

sim:
  settle_timeout: "5s"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Participant.ID != "sqltools.backup" {
		t.Errorf("participant.id = %q", cfg.Participant.ID)
	}
	if cfg.Participant.HideUIContextKey != "sqltools.hideUi" {
		t.Errorf("hide_ui_context_key = %q", cfg.Participant.HideUIContextKey)
	}
	if cfg.Discovery.ManifestDir != "/etc/urimux/manifests" {
		t.Errorf("manifest_dir = %q", cfg.Discovery.ManifestDir)
	}
	if cfg.Journal.Path != "./journal.db" {
		t.Errorf("journal.path = %q", cfg.Journal.Path)
	}
	if cfg.Sim.SettleTimeout != 5*time.Second {
		t.Errorf("settle_timeout = %v", cfg.Sim.SettleTimeout)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("URIMUX_TEST_KEY", "expanded.hideUi")

	path := writeConfig(t, `
participant:
  id: "ext.me"
  hide_ui_context_key: "${URIMUX_TEST_KEY}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Participant.HideUIContextKey != "expanded.hideUi" {
		t.Errorf("expected env expansion, got %q", cfg.Participant.HideUIContextKey)
	}
}

func TestLoad_UnsetEnvVarExpandsEmpty(t *testing.T) {
	path := writeConfig(t, `
participant:
  id: "ext.me"
  hide_ui_context_key: "k"

journal:
  path: "${URIMUX_DEFINITELY_UNSET_VAR}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Journal.Path != "" {
		t.Errorf("expected empty journal path, got %q", cfg.Journal.Path)
	}
}

func TestLoad_DefaultSettleTimeout(t *testing.T) {
	path := writeConfig(t, `
participant:
  id: "ext.me"
  hide_ui_context_key: "k"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Sim.SettleTimeout != 2*time.Second {
		t.Errorf("expected default settle timeout, got %v", cfg.Sim.SettleTimeout)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, `
participant:
  id: "ext.me"
  hide_ui_context_key: "k"

sim:
  settle_timeout: "not-a-duration"
`)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "settle_timeout") {
		t.Errorf("expected settle_timeout parse error, got %v", err)
	}
}

func TestLoad_MissingParticipantID(t *testing.T) {
	path := writeConfig(t, `
participant:
  hide_ui_context_key: "k"
`)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "participant.id") {
		t.Errorf("expected participant.id validation error, got %v", err)
	}
}

func TestLoad_MissingContextKey(t *testing.T) {
	path := writeConfig(t, `
participant:
  id: "ext.me"
`)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "hide_ui_context_key") {
		t.Errorf("expected hide_ui_context_key validation error, got %v", err)
	}
}

func TestLoad_InvalidLoggingLevel(t *testing.T) {
	path := writeConfig(t, `
participant:
  id: "ext.me"
  hide_ui_context_key: "k"

logging:
  level: "verbose"
`)

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for logging.level")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
