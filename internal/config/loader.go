package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies NEXUS_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load. An empty path skips the
// file and uses defaults plus environment overrides only.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known NEXUS_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject secrets at deploy time without touching the TOML
// file.
func applyEnvOverrides(cfg *Config) {
	// ── Server ──
	setInt(&cfg.Server.Port, "NEXUS_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "NEXUS_SERVER_CORS_ORIGINS")

	// ── Auth ──
	setStr(&cfg.Auth.JWTSecret, "NEXUS_AUTH_JWT_SECRET")
	setStr(&cfg.Auth.TokenTTL, "NEXUS_AUTH_TOKEN_TTL")

	// ── Postgres ──
	setBool(&cfg.Postgres.Enabled, "NEXUS_POSTGRES_ENABLED")
	setStr(&cfg.Postgres.DSN, "NEXUS_POSTGRES_DSN")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "NEXUS_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "NEXUS_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "NEXUS_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "NEXUS_REDIS_DB")
	setBool(&cfg.Redis.TLSEnabled, "NEXUS_REDIS_TLS_ENABLED")

	// ── Engine ──
	setStr(&cfg.Engine.OpeningBalance, "NEXUS_ENGINE_OPENING_BALANCE")
	setInt(&cfg.Engine.SettlementLatencyMs, "NEXUS_ENGINE_SETTLEMENT_LATENCY_MS")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "NEXUS_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
