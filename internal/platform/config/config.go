// Package config loads application configuration from an optional YAML
// file overlaid by environment variables. All variables use the
// HAKWON_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig selects and configures the record-blob backend.
type StorageConfig struct {
	Backend     string `yaml:"backend"` // "file", "redis" or "postgres"
	FilePath    string `yaml:"file_path"`
	RedisURL    string `yaml:"redis_url"`
	PostgresURL string `yaml:"postgres_url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load builds the configuration in three layers: defaults, then the
// YAML file named by HAKWON_CONFIG_FILE (if set), then HAKWON_*
// environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Storage: StorageConfig{
			Backend:  "file",
			FilePath: "./data/weekly-records.json",
			RedisURL: "redis://localhost:6379",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path := os.Getenv("HAKWON_CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.mergeEnv()

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() {
	c.Server.Host = envStr("HAKWON_SERVER_HOST", c.Server.Host)
	c.Server.Port = envInt("HAKWON_SERVER_PORT", c.Server.Port)
	c.Storage.Backend = envStr("HAKWON_STORAGE_BACKEND", c.Storage.Backend)
	c.Storage.FilePath = envStr("HAKWON_STORAGE_FILE_PATH", c.Storage.FilePath)
	c.Storage.RedisURL = envStr("HAKWON_STORAGE_REDIS_URL", c.Storage.RedisURL)
	c.Storage.PostgresURL = envStr("HAKWON_STORAGE_POSTGRES_URL", c.Storage.PostgresURL)
	c.Log.Level = envStr("HAKWON_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envStr("HAKWON_LOG_FORMAT", c.Log.Format)
}

// Validate checks that the selected storage backend is usable.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file":
		if c.Storage.FilePath == "" {
			return fmt.Errorf("HAKWON_STORAGE_FILE_PATH is required for the file backend")
		}
	case "redis":
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("HAKWON_STORAGE_REDIS_URL is required for the redis backend")
		}
	case "postgres":
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("HAKWON_STORAGE_POSTGRES_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("HAKWON_STORAGE_BACKEND must be 'file', 'redis' or 'postgres', got %q", c.Storage.Backend)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
