// Package config defines the top-level configuration for the savings engine
// and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by NEXUS_* environment variables.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Auth     AuthConfig     `toml:"auth"`
	Postgres PostgresConfig `toml:"postgres"`
	Redis    RedisConfig    `toml:"redis"`
	Engine   EngineConfig   `toml:"engine"`
	LogLevel string         `toml:"log_level"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// AuthConfig holds session token parameters.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	TokenTTL  string `toml:"token_ttl"` // Go duration string, e.g. "24h"
}

// PostgresConfig holds PostgreSQL connection parameters. When Enabled is
// false, the engine keeps the transaction log in memory only.
type PostgresConfig struct {
	Enabled bool   `toml:"enabled"`
	DSN     string `toml:"dsn"`
}

// RedisConfig holds Redis connection parameters for the event bus. When
// Enabled is false, no events are published off-process.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// EngineConfig holds the savings engine's runtime parameters.
type EngineConfig struct {
	// OpeningBalance seeds the spendable balance at startup.
	OpeningBalance string `toml:"opening_balance"`
	// SettlementLatencyMs simulates network settlement time before any
	// balance-moving operation commits. Zero disables the delay.
	SettlementLatencyMs int `toml:"settlement_latency_ms"`
}

// Defaults returns the built-in configuration used when fields are absent
// from the TOML file.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Auth: AuthConfig{
			TokenTTL: "24h",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Engine: EngineConfig{
			OpeningBalance:      "10000",
			SettlementLatencyMs: 1500,
		},
		LogLevel: "info",
	}
}

// Validate checks the configuration for internally inconsistent or missing
// values. It returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server port %d out of range", c.Server.Port)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("config: auth jwt_secret is required")
	}
	if _, err := time.ParseDuration(c.Auth.TokenTTL); err != nil {
		return fmt.Errorf("config: auth token_ttl: %w", err)
	}
	if c.Postgres.Enabled && strings.TrimSpace(c.Postgres.DSN) == "" {
		return fmt.Errorf("config: postgres enabled but dsn is empty")
	}
	if c.Redis.Enabled && strings.TrimSpace(c.Redis.Addr) == "" {
		return fmt.Errorf("config: redis enabled but addr is empty")
	}
	if c.Engine.SettlementLatencyMs < 0 {
		return fmt.Errorf("config: settlement_latency_ms cannot be negative")
	}
	return nil
}

// TokenTTL parses the configured token lifetime. Validate must have passed.
func (c *Config) TokenTTL() time.Duration {
	d, _ := time.ParseDuration(c.Auth.TokenTTL)
	return d
}

// SettlementLatency returns the configured latency as a duration.
func (c *Config) SettlementLatency() time.Duration {
	return time.Duration(c.Engine.SettlementLatencyMs) * time.Millisecond
}
