package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("Storage.Backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want info/json", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HAKWON_SERVER_PORT", "9090")
	t.Setenv("HAKWON_STORAGE_BACKEND", "redis")
	t.Setenv("HAKWON_STORAGE_REDIS_URL", "redis://cache:6379/1")
	t.Setenv("HAKWON_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "redis" {
		t.Errorf("Storage.Backend = %q, want redis", cfg.Storage.Backend)
	}
	if cfg.Storage.RedisURL != "redis://cache:6379/1" {
		t.Errorf("Storage.RedisURL = %q", cfg.Storage.RedisURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadInvalidEnvIntKeepsDefault(t *testing.T) {
	t.Setenv("HAKWON_SERVER_PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want the default 8080", cfg.Server.Port)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	file := `
server:
  port: 7000
storage:
  backend: postgres
  postgres_url: postgres://localhost/hakwon
log:
  format: text
`
	if err := os.WriteFile(path, []byte(file), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("HAKWON_CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "postgres" || cfg.Storage.PostgresURL != "postgres://localhost/hakwon" {
		t.Errorf("Storage = %+v, want the postgres backend from the file", cfg.Storage)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want the default to survive a partial file", cfg.Server.Host)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7000\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("HAKWON_CONFIG_FILE", path)
	t.Setenv("HAKWON_SERVER_PORT", "7500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7500 {
		t.Errorf("Server.Port = %d, want the env value 7500", cfg.Server.Port)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("HAKWON_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for a missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		storage StorageConfig
		wantErr bool
	}{
		{"file ok", StorageConfig{Backend: "file", FilePath: "/tmp/records.json"}, false},
		{"file missing path", StorageConfig{Backend: "file"}, true},
		{"redis ok", StorageConfig{Backend: "redis", RedisURL: "redis://localhost:6379"}, false},
		{"redis missing url", StorageConfig{Backend: "redis"}, true},
		{"postgres ok", StorageConfig{Backend: "postgres", PostgresURL: "postgres://localhost/db"}, false},
		{"postgres missing url", StorageConfig{Backend: "postgres"}, true},
		{"unknown backend", StorageConfig{Backend: "dynamo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Storage: tt.storage}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
