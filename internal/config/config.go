package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Backend   BackendConfig   `mapstructure:"backend"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port" envconfig:"SERVER_PORT"`
	TimeoutSeconds int `mapstructure:"timeout_seconds" envconfig:"SERVER_TIMEOUT_SECONDS"`
}

// BackendConfig points at the hospital REST API this gateway fronts.
type BackendConfig struct {
	BaseURL     string        `mapstructure:"base_url" envconfig:"BACKEND_BASE_URL"`
	Timeout     time.Duration `mapstructure:"timeout" envconfig:"BACKEND_TIMEOUT"`
	MaxFailures int           `mapstructure:"max_failures" envconfig:"BACKEND_MAX_FAILURES"`
	Cooldown    time.Duration `mapstructure:"cooldown" envconfig:"BACKEND_COOLDOWN"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours int    `mapstructure:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" envconfig:"RATE_LIMIT_RPS"`
	Burst             int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST"`
}

// CacheConfig bounds the in-process doctor queue and reference data caches.
type CacheConfig struct {
	QueueTTL     time.Duration `mapstructure:"queue_ttl" envconfig:"CACHE_QUEUE_TTL"`
	ReferenceTTL time.Duration `mapstructure:"reference_ttl" envconfig:"CACHE_REFERENCE_TTL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Environment variables win over the file.
	if err := envconfig.Process("workstation", &config); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8085
	}
	if cfg.Server.TimeoutSeconds == 0 {
		cfg.Server.TimeoutSeconds = 30
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 20 * time.Second
	}
	if cfg.Backend.MaxFailures == 0 {
		cfg.Backend.MaxFailures = 5
	}
	if cfg.Backend.Cooldown == 0 {
		cfg.Backend.Cooldown = 30 * time.Second
	}
	if cfg.JWT.ExpiryHours == 0 {
		cfg.JWT.ExpiryHours = 8
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 50
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 100
	}
	if cfg.Cache.QueueTTL == 0 {
		cfg.Cache.QueueTTL = 2 * time.Minute
	}
	if cfg.Cache.ReferenceTTL == 0 {
		cfg.Cache.ReferenceTTL = 10 * time.Minute
	}
}
