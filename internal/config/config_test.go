package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mcpi.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Address() != "127.0.0.1:4711" {
		t.Errorf("expected default address 127.0.0.1:4711, got %s", cfg.Address())
	}
	if !cfg.Connection.AutoFlush {
		t.Error("expected auto-flush on by default")
	}
	if cfg.Connection.DrainBeforeQuery {
		t.Error("expected drain-before-query off by default")
	}
	if cfg.Connection.DrainWindow != time.Millisecond {
		t.Errorf("expected 1ms drain window, got %v", cfg.Connection.DrainWindow)
	}
	if cfg.Journal.Enabled {
		t.Error("expected journal off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/mcpi.yaml")
	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
	if cfg.Server.Port != 4711 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
server:
  host: raspberrypi.local
  port: 4712
connection:
  auto_flush: false
  drain_before_query: true
  drain_window: 5ms
journal:
  enabled: true
  driver: sqlite
  sqlite_path: /tmp/j.db
palette: blocks.yaml
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Address() != "raspberrypi.local:4712" {
		t.Errorf("unexpected address %s", cfg.Address())
	}
	if cfg.Connection.AutoFlush || !cfg.Connection.DrainBeforeQuery {
		t.Errorf("unexpected connection settings %+v", cfg.Connection)
	}
	if cfg.Connection.DrainWindow != 5*time.Millisecond {
		t.Errorf("expected 5ms drain window, got %v", cfg.Connection.DrainWindow)
	}
	if !cfg.Journal.Enabled || cfg.Journal.SQLitePath != "/tmp/j.db" {
		t.Errorf("unexpected journal settings %+v", cfg.Journal)
	}
	if cfg.Palette != "blocks.yaml" {
		t.Errorf("expected palette blocks.yaml, got %s", cfg.Palette)
	}
	if len(cfg.ConnectionOptions()) != 3 {
		t.Errorf("expected 3 connection options")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
	if cfg == nil || cfg.Server.Port != 4711 {
		t.Error("expected defaults on invalid YAML")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MCPI_HOST", "10.0.0.5")
	t.Setenv("MCPI_PORT", "5000")
	t.Setenv("MCPI_TRANSPORT", "WebSocket")

	cfg, err := LoadConfig(writeConfig(t, "server:\n  host: ignored\n  path: api\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Address(); got != "ws://10.0.0.5:5000/api" {
		t.Errorf("expected ws://10.0.0.5:5000/api, got %s", got)
	}
}

func TestLoadConfig_ZeroDialTimeout(t *testing.T) {
	path := writeConfig(t, "connection:\n  auto_flush: true\n  dial_timeout: 0s\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for a zero dial timeout")
	}
}

func TestLoadConfig_BadEnvPort(t *testing.T) {
	t.Setenv("MCPI_PORT", "forty")

	if _, err := LoadConfig("/nonexistent/mcpi.yaml"); err == nil {
		t.Error("expected error for non-numeric MCPI_PORT")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ClientConfig)
	}{
		{"port zero", func(c *ClientConfig) { c.Server.Port = 0 }},
		{"port too large", func(c *ClientConfig) { c.Server.Port = 70000 }},
		{"unknown transport", func(c *ClientConfig) { c.Server.Transport = "udp" }},
		{"negative drain window", func(c *ClientConfig) { c.Connection.DrainWindow = -time.Second }},
		{"zero dial timeout", func(c *ClientConfig) { c.Connection.DialTimeout = 0 }},
		{"negative dial timeout", func(c *ClientConfig) { c.Connection.DialTimeout = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAddressIPv6(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Host = "::1"
	if got := cfg.Address(); got != "[::1]:4711" {
		t.Errorf("expected [::1]:4711, got %s", got)
	}
}
