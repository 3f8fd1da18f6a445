package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("driver = %q, want %q", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Database.Path != "./courses.db" {
		t.Errorf("path = %q", cfg.Database.Path)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.ShutdownTimeout() != 10*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.ShutdownTimeout())
	}
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
database:
  driver: "sqlite"
  path: "/tmp/file.db"
  busy_timeout: "2s"
logging:
  level: "debug"
`)
	t.Setenv("DB_PATH", "/tmp/env.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/env.db" {
		t.Errorf("path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Database.MaxOpenConns != 3 {
		t.Errorf("max open conns = %d, want 3", cfg.Database.MaxOpenConns)
	}
	if cfg.BusyTimeout() != 2*time.Second {
		t.Errorf("busy timeout = %v", cfg.BusyTimeout())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
	origins := cfg.CORS.AllowedOrigins
	if len(origins) != 2 || origins[0] != "http://a.test" || origins[1] != "http://b.test" {
		t.Errorf("origins = %v", origins)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown driver", "database:\n  driver: \"mysql\"\n"},
		{"postgres without dsn", "database:\n  driver: \"pgx\"\n"},
		{"empty sqlite path", "database:\n  path: \" \"\n"},
		{"bad duration", "server:\n  read_timeout: \"soon\"\n"},
		{"negative pool", "database:\n  max_open_conns: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadConfigRejectsBadEnvInteger(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for non-numeric DB_MAX_OPEN_CONNS")
	}
}
