package config

import "time"

// RateLimitConfig drives the Redis-backed request limiter.  The model is
// a token bucket that refills completely once per window, which matches
// the classic "N requests per window" contract the public variables
// describe.
type RateLimitConfig struct {
	Enabled     bool          // RATE_LIMIT_ENABLED
	MaxRequests int           // RATE_LIMIT_MAX_REQUESTS: bucket capacity
	Window      time.Duration // RATE_LIMIT_WINDOW_MS: refill interval
	TTL         time.Duration // lifetime of idle bucket keys
	Prefix      string        // RATE_LIMIT_PREFIX: Redis key namespace
}

// LoadRateLimitConfig reads the limiter settings from the environment.
// Defaults allow 100 requests per 15 minutes per client IP.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:     envBool("RATE_LIMIT_ENABLED", true),
		MaxRequests: envInt("RATE_LIMIT_MAX_REQUESTS", 100),
		Window:      envMillis("RATE_LIMIT_WINDOW_MS", 15*time.Minute),
		Prefix:      getenv("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.MaxRequests < 1 {
		cfg.MaxRequests = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	// keep idle keys around for a few windows so partially drained
	// buckets are not forgotten early
	cfg.TTL = 2 * cfg.Window
	return cfg
}
