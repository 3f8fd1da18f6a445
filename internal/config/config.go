package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout     string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Path            string `yaml:"path" env:"DB_PATH"`
		DSN             string `yaml:"dsn" env:"DB_DSN"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		BusyTimeout     string `yaml:"busy_timeout" env:"DB_BUSY_TIMEOUT"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional, defaults and env vars are enough to run
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "10s"
	config.Server.ShutdownTimeout = "10s"

	// SQLite allows a single writer, so the pool is kept to one connection
	config.Database.Driver = DriverSQLite
	config.Database.Path = "./courses.db"
	config.Database.MaxOpenConns = 1
	config.Database.MaxIdleConns = 1
	config.Database.ConnMaxLifetime = "1h"
	config.Database.BusyTimeout = "5s"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.CORS.AllowedOrigins = []string{"*"}
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	switch config.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(config.Database.Path) == "" {
			return fmt.Errorf("database path is required for the %s driver", DriverSQLite)
		}
	case DriverPostgres:
		if strings.TrimSpace(config.Database.DSN) == "" {
			return fmt.Errorf("database dsn is required for the %s driver", DriverPostgres)
		}
	case "":
		return fmt.Errorf("database driver is required")
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Database.MaxOpenConns < 0 || config.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database connection limits must not be negative")
	}

	durations := map[string]string{
		"server read timeout":        config.Server.ReadTimeout,
		"server write timeout":       config.Server.WriteTimeout,
		"server shutdown timeout":    config.Server.ShutdownTimeout,
		"database conn max lifetime": config.Database.ConnMaxLifetime,
		"database busy timeout":      config.Database.BusyTimeout,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	return nil
}

// ReadTimeout returns the parsed server read timeout
func (c *Config) ReadTimeout() time.Duration {
	return mustDuration(c.Server.ReadTimeout)
}

// WriteTimeout returns the parsed server write timeout
func (c *Config) WriteTimeout() time.Duration {
	return mustDuration(c.Server.WriteTimeout)
}

// ShutdownTimeout returns the parsed graceful shutdown timeout
func (c *Config) ShutdownTimeout() time.Duration {
	return mustDuration(c.Server.ShutdownTimeout)
}

// ConnMaxLifetime returns the parsed connection max lifetime
func (c *Config) ConnMaxLifetime() time.Duration {
	return mustDuration(c.Database.ConnMaxLifetime)
}

// BusyTimeout returns the parsed SQLite busy timeout
func (c *Config) BusyTimeout() time.Duration {
	return mustDuration(c.Database.BusyTimeout)
}

// mustDuration parses a duration that validateConfig already accepted.
func mustDuration(value string) time.Duration {
	d, _ := time.ParseDuration(value)
	return d
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
