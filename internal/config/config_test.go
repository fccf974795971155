package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"DRAFTER_BASE_URL",
	"DRAFTER_LISTEN_ADDR",
	"DRAFTER_DOWNLOAD_DIR",
	"DRAFTER_STATUS_SCHEDULE",
	"DRAFTER_REQUEST_TIMEOUT",
	"DRAFTER_LOG_LEVEL",
	"DRAFTER_ALLOWED_ORIGINS",
}

// clearEnv unsets every config variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigFile_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DRAFTER_BASE_URL", "http://localhost:8000/")

	cfg, err := LoadConfigFile("")
	if err != nil {
		t.Fatalf("LoadConfigFile returned error: %v", err)
	}

	if cfg.BaseURL != "http://localhost:8000" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.BaseURL)
	}
	if cfg.ListenAddr != defaultListenAddr {
		t.Fatalf("expected listen addr %s, got %s", defaultListenAddr, cfg.ListenAddr)
	}
	if cfg.StatusSchedule != defaultStatusSchedule {
		t.Fatalf("expected schedule %s, got %s", defaultStatusSchedule, cfg.StatusSchedule)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("expected no request timeout by default, got %s", cfg.RequestTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://"+defaultListenAddr {
		t.Fatalf("unexpected default origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigFile_MissingBaseURL(t *testing.T) {
	clearEnv(t)

	if _, err := LoadConfigFile(""); err == nil {
		t.Fatal("expected error when base URL is missing")
	}
}

func TestLoadConfigFile_InvalidBaseURL(t *testing.T) {
	clearEnv(t)

	for _, raw := range []string{"localhost:8000", "ftp://example.com", "/draft"} {
		t.Setenv("DRAFTER_BASE_URL", raw)
		if _, err := LoadConfigFile(""); err == nil {
			t.Fatalf("expected error for base URL %q", raw)
		}
	}
}

func TestLoadConfigFile_YAMLWithEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "drafter.yaml")
	content := []byte(`base_url: https://drafts.example.com
listen_addr: 127.0.0.1:9000
download_dir: /tmp/drafts
status_schedule: "@every 1m"
request_timeout: 45s
log_level: debug
allowed_origins:
  - http://localhost:5173
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("DRAFTER_LISTEN_ADDR", "127.0.0.1:9100")

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile returned error: %v", err)
	}

	if cfg.BaseURL != "https://drafts.example.com" {
		t.Fatalf("expected base URL from file, got %s", cfg.BaseURL)
	}
	if cfg.ListenAddr != "127.0.0.1:9100" {
		t.Fatalf("expected env to override listen addr, got %s", cfg.ListenAddr)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Fatalf("expected 45s timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.StatusSchedule != "@every 1m" {
		t.Fatalf("expected schedule from file, got %s", cfg.StatusSchedule)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigFile_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DRAFTER_BASE_URL", "http://localhost:8000")

	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfigFile_EmptyScheduleDisablesMonitor(t *testing.T) {
	clearEnv(t)
	t.Setenv("DRAFTER_BASE_URL", "http://localhost:8000")
	t.Setenv("DRAFTER_STATUS_SCHEDULE", "")

	cfg, err := LoadConfigFile("")
	if err != nil {
		t.Fatalf("LoadConfigFile returned error: %v", err)
	}
	if cfg.StatusSchedule != "" {
		t.Fatalf("expected empty schedule, got %q", cfg.StatusSchedule)
	}
}

func TestLoadConfigFile_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DRAFTER_BASE_URL", "http://localhost:8000")

	t.Setenv("DRAFTER_REQUEST_TIMEOUT", "soon")
	if _, err := LoadConfigFile(""); err == nil {
		t.Fatal("expected error for unparsable timeout")
	}

	t.Setenv("DRAFTER_REQUEST_TIMEOUT", "")
	t.Setenv("DRAFTER_LOG_LEVEL", "verbose")
	if _, err := LoadConfigFile(""); err == nil {
		t.Fatal("expected error for unsupported log level")
	}
}

func TestAllowedOriginsFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DRAFTER_BASE_URL", "http://localhost:8000")
	t.Setenv("DRAFTER_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := LoadConfigFile("")
	if err != nil {
		t.Fatalf("LoadConfigFile returned error: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("UNIT_TEST_ENV", "value")
	if got := getEnvOrDefault("UNIT_TEST_ENV", "fallback"); got != "value" {
		t.Fatalf("expected env value, got %s", got)
	}

	t.Setenv("UNIT_TEST_ENV", "")
	if got := getEnvOrDefault("UNIT_TEST_ENV", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback value, got %s", got)
	}
}
