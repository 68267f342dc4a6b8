// Package config loads the YAML application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when no config path is provided.
const DefaultConfigPath = "config.yaml"

// AppConfig is the root application configuration.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Logging  LoggingConfig  `yaml:"logging"`
	Users    []SeedUser     `yaml:"users"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"` // Listen address, e.g. ":8080".
}

// DatabaseConfig holds the database DSN.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"` // PostgreSQL URL or SQLite path.
}

// RedisConfig holds optional Redis cache settings. The cache is disabled
// when Addr is empty.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// JWTConfig holds bearer token settings.
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// UnmarshalYAML decodes the jwt section, accepting Go duration syntax for
// the expiry, e.g. "24h".
func (c *JWTConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Secret string `yaml:"secret"`
		Expiry string `yaml:"expiry"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.Secret = raw.Secret
	if trimmed := strings.TrimSpace(raw.Expiry); trimmed != "" {
		expiry, errParse := time.ParseDuration(trimmed)
		if errParse != nil {
			return fmt.Errorf("config: invalid jwt.expiry %q: %w", raw.Expiry, errParse)
		}
		c.Expiry = expiry
	}
	return nil
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`        // logrus level name, default "info".
	File       string `yaml:"file"`         // Rotating log file; stdout only when empty.
	MaxSizeMB  int    `yaml:"max_size_mb"`  // Rotation size threshold.
	MaxBackups int    `yaml:"max_backups"`  // Rotated files to retain.
	MaxAgeDays int    `yaml:"max_age_days"` // Rotated file retention in days.
}

// SeedUser provisions an account at startup. Passwords are hashed before
// storage; existing accounts are updated in place.
type SeedUser struct {
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	Roles    []string `yaml:"roles"`
	Disabled bool     `yaml:"disabled"`
}

// ResolveConfigPath normalizes a config path, falling back to the default.
func ResolveConfigPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return DefaultConfigPath
	}
	return filepath.Clean(trimmed)
}

// Load reads and validates the configuration file, applying defaults.
func Load(path string) (AppConfig, error) {
	cfg := AppConfig{
		Server: ServerConfig{Addr: ":8080"},
		JWT:    JWTConfig{Expiry: 24 * time.Hour},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}

	data, errRead := os.ReadFile(ResolveConfigPath(path))
	if errRead != nil {
		return AppConfig{}, fmt.Errorf("config: read %s: %w", path, errRead)
	}
	if errDecode := yaml.Unmarshal(data, &cfg); errDecode != nil {
		return AppConfig{}, fmt.Errorf("config: parse %s: %w", path, errDecode)
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return AppConfig{}, fmt.Errorf("config: missing database.dsn")
	}
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return AppConfig{}, fmt.Errorf("config: missing jwt.secret")
	}
	if cfg.JWT.Expiry <= 0 {
		cfg.JWT.Expiry = 24 * time.Hour
	}

	return cfg, nil
}
