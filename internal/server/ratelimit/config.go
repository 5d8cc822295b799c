package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/skill-matcher/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// FromConfig converts the ratelimit section of the application config.
func FromConfig(cfg config.RateLimitConfig) *Config {
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    cfg.DefaultLimit,
		DefaultWindow:   cfg.DefaultWindow,
		CleanupInterval: cfg.CleanupInterval,
		Whitelist:       toSet(cfg.Whitelist),
		Blacklist:       toSet(cfg.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Document parsing and storage
		{Path: "/resume/upload", Method: http.MethodPost, Limit: 20, Window: time.Hour, Burst: 5},

		// Credential endpoints
		{Path: "/auth/login", Method: http.MethodPost, Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/auth/signup", Method: http.MethodPost, Limit: 5, Window: time.Minute, Burst: 5},
		{Path: "/auth/set-role", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},

		// Stateless matching
		{Path: "/skills/", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/roles/", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 30},
	}
}

func toSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
