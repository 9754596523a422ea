package database

import (
	"fmt"
	"time"
)

// Config holds all settings needed to connect to and pool a database.
// The surrounding system hands this in fully parsed; the adapter never
// reads files or flags itself.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string

	// Schema is the namespace introspected and queried (default "public").
	Schema string

	// SSLMode is the engine TLS setting (disable, require, verify-full, …).
	SSLMode string

	// Pool tuning
	MaxConns        int32         // maximum number of connections in the pool
	MinConns        int32         // minimum number of idle connections kept alive
	MaxConnLifetime time.Duration // maximum time a connection may be reused
	MaxConnIdleTime time.Duration // maximum time a connection may sit idle

	// ConnectTimeout is the time limit for establishing a new connection.
	ConnectTimeout time.Duration
}

// DefaultConfig returns production-ready pool settings for the given
// connection coordinates.
func DefaultConfig(host string, port int, user, password, dbname string) *Config {
	return &Config{
		Host:            host,
		Port:            port,
		User:            user,
		Password:        password,
		Database:        dbname,
		Schema:          "public",
		SSLMode:         "disable",
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
		ConnectTimeout:  10 * time.Second,
	}
}

// Normalize fills zero-valued fields with usable defaults.
func (c *Config) Normalize() {
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.Schema == "" {
		c.Schema = "public"
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	if c.MaxConns == 0 {
		c.MaxConns = 25
	}
	if c.MinConns == 0 {
		c.MinConns = 5
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10 * time.Second
	}
}

// DSN renders the keyword/value connection string for the engine driver.
// The password travels only through the driver — never logged.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
