package intervo

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Languages.Default != "en" {
		t.Fatalf("default language = %q, want en", cfg.Languages.Default)
	}
	if cfg.Vendors.STT.Provider != "google" || cfg.Vendors.GenAI.Provider != "gemini" {
		t.Fatalf("unexpected vendor defaults: %+v", cfg.Vendors)
	}
	if !cfg.Privacy.RedactPayloads {
		t.Fatalf("payload redaction must default to on")
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("TEST_GENAI_KEY", "secret-key")
	t.Setenv("TEST_SA_EMAIL", "svc@project.iam.gserviceaccount.com")
	path := writeConfig(t, `
google:
  client_email: ${TEST_SA_EMAIL}
vendors:
  genai:
    provider: gemini
    settings:
      api_key: ${TEST_GENAI_KEY}
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Google.ClientEmail != "svc@project.iam.gserviceaccount.com" {
		t.Fatalf("client_email not expanded: %q", cfg.Google.ClientEmail)
	}
	if cfg.Vendors.GenAI.Settings["api_key"] != "secret-key" {
		t.Fatalf("settings api_key not expanded: %v", cfg.Vendors.GenAI.Settings)
	}
}

func TestLoadConfigRejectsBlankProvider(t *testing.T) {
	path := writeConfig(t, `
vendors:
  stt:
    provider: " "
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected validation error for blank provider")
	}
}
