package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Env != "development" {
		t.Fatalf("env = %q", cfg.Env)
	}
	if cfg.Port != "3001" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.DBPath != "database/netflim.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.AdminPasswordHash != "" {
		t.Fatalf("admin hash should default empty")
	}
	if cfg.IsProduction() {
		t.Fatalf("development reported as production")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PATH", "/tmp/app.db")
	t.Setenv("ADMIN_TOKEN_TTL_MIN", "15")

	cfg := Load()
	if !cfg.IsProduction() || cfg.Port != "8080" || cfg.DBPath != "/tmp/app.db" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.AdminTokenTTLMin != 15 {
		t.Fatalf("ttl = %d, want 15", cfg.AdminTokenTTLMin)
	}
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("ADMIN_TOKEN_TTL_MIN", "soon")
	if cfg := Load(); cfg.AdminTokenTTLMin != 60 {
		t.Fatalf("ttl = %d, want the default on parse failure", cfg.AdminTokenTTLMin)
	}
}

func TestRateLimitDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Fatalf("rate limiting disabled by default")
	}
	if cfg.MaxRequests != 100 {
		t.Fatalf("max requests = %d", cfg.MaxRequests)
	}
	if cfg.Window != 15*time.Minute {
		t.Fatalf("window = %v", cfg.Window)
	}
	if cfg.TTL != 2*cfg.Window {
		t.Fatalf("ttl = %v, want twice the window", cfg.TTL)
	}
}

func TestRateLimitOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "60000")

	cfg := LoadRateLimitConfig()
	if cfg.Enabled {
		t.Fatalf("enabled despite RATE_LIMIT_ENABLED=false")
	}
	if cfg.MaxRequests != 10 || cfg.Window != time.Minute {
		t.Fatalf("cfg = %+v", cfg)
	}
}
