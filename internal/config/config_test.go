package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "APP_ENV", "LOG_LEVEL", "PUBLIC_BASE_URL", "CORS_ORIGINS", "CONFIG_FILE"} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relay.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.AppEnv != "development" || cfg.IsProduction() {
		t.Errorf("AppEnv = %q", cfg.AppEnv)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
port: "9000"
app_env: production
log_level: debug
public_base_url: https://drop.example.com/
cors_origins:
  - https://a.example.com
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000 from file", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Error("expected production from file")
	}
	if cfg.PublicBaseURL != "https://drop.example.com" {
		t.Errorf("PublicBaseURL = %q, trailing slash not trimmed", cfg.PublicBaseURL)
	}

	t.Setenv("PORT", "9100")
	t.Setenv("CORS_ORIGINS", "https://b.example.com, https://c.example.com")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("Port = %q, env should win over file", cfg.Port)
	}
	want := []string{"https://b.example.com", "https://c.example.com"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, file value should survive", cfg.LogLevel)
	}
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", writeFile(t, "port: \"7000\"\n"))

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7000" {
		t.Errorf("Port = %q, want 7000", cfg.Port)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		port string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }, ""},
		{"bad yaml", func(t *testing.T) string { return writeFile(t, "port: [oops") }, ""},
		{"bad port", func(t *testing.T) string { return "" }, "http"},
		{"port out of range", func(t *testing.T) string { return "" }, "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", tt.port)
			if _, err := Load(tt.path(t)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
