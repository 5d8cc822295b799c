package config

import (
	"fmt"
	"time"
)

// JWTConfig holds configuration for JWT token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// JWT returns the token settings of the auth section. The secret is required.
func (a AuthConfig) JWT() (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:          a.JWTSecret,
		ExpirationHours: a.JWTExpirationHours,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Expiration returns the token lifetime.
func (c *JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT secret is required but not set (JWT_SECRET)")
	}
	if c.ExpirationHours == 0 {
		c.ExpirationHours = 24
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT expiration must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
