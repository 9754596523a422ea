// Package config loads gridbase settings from a YAML file and hands the
// parsed sections to the subsystems that consume them.
package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/gridbase/gridbase/internal/database"
	"github.com/gridbase/gridbase/internal/logger"
)

// Config is the full settings file.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig is the connection section of the settings file.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Schema   string `yaml:"schema"`
	SSLMode  string `yaml:"sslmode"`

	MaxConns int32 `yaml:"max_conns"`
	MinConns int32 `yaml:"min_conns"`

	// Durations are "ParseDuration" strings: "30m", "3s", …
	MaxConnLifetime string `yaml:"max_conn_lifetime"`
	MaxConnIdleTime string `yaml:"max_conn_idle_time"`
	ConnectTimeout  string `yaml:"connect_timeout"`
}

// LoggingConfig is the logging section of the settings file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and validates a settings file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates settings from raw YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	for field, v := range map[string]string{
		"database.max_conn_lifetime":  c.Database.MaxConnLifetime,
		"database.max_conn_idle_time": c.Database.MaxConnIdleTime,
		"database.connect_timeout":    c.Database.ConnectTimeout,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}
	return nil
}

// duration parses a validated duration string, returning 0 when unset.
func duration(v string) time.Duration {
	if v == "" {
		return 0
	}
	d, _ := time.ParseDuration(v)
	return d
}

// DatabaseConfig converts the connection section into the adapter's config,
// applying production defaults to anything unset.
func (c *Config) DatabaseConfig() *database.Config {
	db := c.Database
	cfg := database.DefaultConfig(db.Host, db.Port, db.User, db.Password, db.Database)
	if db.Schema != "" {
		cfg.Schema = db.Schema
	}
	if db.SSLMode != "" {
		cfg.SSLMode = db.SSLMode
	}
	if db.MaxConns > 0 {
		cfg.MaxConns = db.MaxConns
	}
	if db.MinConns > 0 {
		cfg.MinConns = db.MinConns
	}
	if d := duration(db.MaxConnLifetime); d > 0 {
		cfg.MaxConnLifetime = d
	}
	if d := duration(db.MaxConnIdleTime); d > 0 {
		cfg.MaxConnIdleTime = d
	}
	if d := duration(db.ConnectTimeout); d > 0 {
		cfg.ConnectTimeout = d
	}
	cfg.Normalize()
	return cfg
}

// LoggerConfig converts the logging section into the logger's config.
func (c *Config) LoggerConfig() *logger.Config {
	cfg := logger.DefaultConfig()
	if c.Logging.Level != "" {
		cfg.Level = c.Logging.Level
	}
	if c.Logging.Format != "" {
		cfg.Format = c.Logging.Format
	}
	return cfg
}
