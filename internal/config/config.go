// Package config loads application configuration from environment
// variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the runtime settings of the service.  Every field maps to
// an environment variable; defaults suit local development.
type Config struct {
	Env               string // APP_ENV: development, test or production
	Port              string // PORT: HTTP port to listen on
	DBPath            string // DB_PATH: path of the SQLite database file
	AdminSecret       string // ADMIN_SECRET: HS256 signing secret for admin tokens
	AdminPasswordHash string // ADMIN_PASSWORD_HASH: bcrypt hash of the admin password; empty disables admin routes
	AdminTokenTTLMin  int    // ADMIN_TOKEN_TTL_MIN: admin token lifetime in minutes
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Env:               getenv("APP_ENV", "development"),
		Port:              getenv("PORT", "3001"),
		DBPath:            getenv("DB_PATH", "database/netflim.db"),
		AdminSecret:       getenv("ADMIN_SECRET", "dev-admin-secret"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminTokenTTLMin:  envInt("ADMIN_TOKEN_TTL_MIN", 60),
	}
}

// IsProduction reports whether the service runs with production error
// reporting (generic 500 bodies, no detail leakage).
func (c Config) IsProduction() bool { return c.Env == "production" }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}

func envMillis(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return def
}
