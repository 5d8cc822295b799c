// Package config loads service configuration from a file, the environment and
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SKILLMATCH_SERVER_PORT.
const EnvPrefix = "SKILLMATCH"

// Storage backends.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config is the root configuration shared by the server, the worker and the CLI.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Matcher   MatcherConfig   `mapstructure:"matcher"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read-timeout"`
	WriteTimeout   time.Duration `mapstructure:"write-timeout"`
	MaxUploadBytes int64         `mapstructure:"max-upload-bytes"`
	AllowedOrigins []string      `mapstructure:"allowed-origins"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// StorageConfig selects where uploaded resumes are kept. The s3 backend also
// serves Cloudflare R2 through Endpoint.
type StorageConfig struct {
	Backend         string `mapstructure:"backend"`
	Dir             string `mapstructure:"dir"`
	Bucket          string `mapstructure:"bucket"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access-key-id"`
	SecretAccessKey string `mapstructure:"secret-access-key"`
	MaxRetries      int    `mapstructure:"max-retries"`
}

type QueueConfig struct {
	URL      string `mapstructure:"url"`
	Name     string `mapstructure:"name"`
	Exchange string `mapstructure:"exchange"`
	Workers  int    `mapstructure:"workers"`
	Prefetch int    `mapstructure:"prefetch"`
}

type MatcherConfig struct {
	TopN int `mapstructure:"top-n"`
}

type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt-secret"`
	JWTExpirationHours int    `mapstructure:"jwt-expiration-hours"`
	BcryptCost         int    `mapstructure:"bcrypt-cost"`
	PasswordPepper     string `mapstructure:"password-pepper"`
}

type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default-limit"`
	DefaultWindow   time.Duration `mapstructure:"default-window"`
	CleanupInterval time.Duration `mapstructure:"cleanup-interval"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// legacyEnv maps config keys to the unprefixed variables earlier deployments
// used. The prefixed form always wins.
var legacyEnv = map[string]string{
	"server.port":                "PORT",
	"database.url":               "DATABASE_URL",
	"queue.url":                  "RABBITMQ_URL",
	"storage.bucket":             "R2_BUCKET",
	"storage.endpoint":           "R2_ENDPOINT",
	"storage.access-key-id":      "R2_ACCESS_KEY_ID",
	"storage.secret-access-key":  "R2_SECRET_ACCESS_KEY",
	"auth.jwt-secret":            "JWT_SECRET",
	"auth.jwt-expiration-hours":  "JWT_EXPIRATION_HOURS",
	"auth.bcrypt-cost":           "BCRYPT_COST",
	"auth.password-pepper":       "PASSWORD_PEPPER",
	"ratelimit.enabled":          "RATE_LIMIT_ENABLED",
	"ratelimit.default-limit":    "RATE_LIMIT_DEFAULT_LIMIT",
	"ratelimit.default-window":   "RATE_LIMIT_DEFAULT_WINDOW",
	"ratelimit.cleanup-interval": "RATE_LIMIT_CLEANUP_INTERVAL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5002)
	v.SetDefault("server.read-timeout", 15*time.Second)
	v.SetDefault("server.write-timeout", 60*time.Second)
	v.SetDefault("server.max-upload-bytes", 5<<20)
	v.SetDefault("server.allowed-origins", []string{"*"})

	v.SetDefault("database.url", "")

	v.SetDefault("storage.backend", StorageLocal)
	v.SetDefault("storage.dir", "uploads/resumes")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.access-key-id", "")
	v.SetDefault("storage.secret-access-key", "")
	v.SetDefault("storage.max-retries", 3)

	v.SetDefault("queue.url", "")
	v.SetDefault("queue.name", "resume_analysis")
	v.SetDefault("queue.exchange", "analysis_updates")
	v.SetDefault("queue.workers", 4)
	v.SetDefault("queue.prefetch", 1)

	v.SetDefault("matcher.top-n", 3)

	v.SetDefault("auth.jwt-secret", "")
	v.SetDefault("auth.jwt-expiration-hours", 24)
	v.SetDefault("auth.bcrypt-cost", DefaultBcryptCost)
	v.SetDefault("auth.password-pepper", "")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.default-limit", 1000)
	v.SetDefault("ratelimit.default-window", time.Minute)
	v.SetDefault("ratelimit.cleanup-interval", 5*time.Minute)
	v.SetDefault("ratelimit.whitelist", []string{})
	v.SetDefault("ratelimit.blacklist", []string{})

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Load reads configuration from path (YAML, JSON or TOML; optional), then
// applies environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", legacy, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Settings that only
// matter to one command (database, queue URL, JWT secret) are checked where
// they are used.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: 'server.port' out of range: %d", c.Server.Port))
	}
	if c.Server.MaxUploadBytes < 1 {
		errs = append(errs, fmt.Errorf("config error: 'server.max-upload-bytes' must be positive"))
	}

	switch c.Storage.Backend {
	case StorageLocal:
		if c.Storage.Dir == "" {
			errs = append(errs, fmt.Errorf("config error: 'storage.dir' is required for the local backend"))
		}
	case StorageS3:
		if c.Storage.Bucket == "" {
			errs = append(errs, fmt.Errorf("config error: 'storage.bucket' is required for the s3 backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("config error: unknown storage backend %q", c.Storage.Backend))
	}

	if c.Queue.Workers < 1 {
		errs = append(errs, fmt.Errorf("config error: 'queue.workers' must be at least 1"))
	}
	if c.Matcher.TopN < 1 {
		errs = append(errs, fmt.Errorf("config error: 'matcher.top-n' must be at least 1"))
	}

	return errors.Join(errs...)
}
