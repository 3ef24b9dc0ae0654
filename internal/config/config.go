// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"EVENTCAL_DB_PATH" envDefault:"./data/eventcal.db"`
	ServerHost string `env:"EVENTCAL_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"EVENTCAL_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"EVENTCAL_ENV" envDefault:"development"`
	LogLevel   string `env:"EVENTCAL_LOG_LEVEL" envDefault:"info"`

	// AI provider configuration. The API is OpenAI-compatible; BaseURL may
	// point at DeepSeek or any compatible gateway.
	AIAPIKey  string `env:"EVENTCAL_AI_API_KEY"`
	AIBaseURL string `env:"EVENTCAL_AI_BASE_URL" envDefault:"https://api.deepseek.com/v1"`
	AIModel   string `env:"EVENTCAL_AI_MODEL" envDefault:"deepseek-chat"`

	// Cache configuration
	RedisURL     string `env:"EVENTCAL_REDIS_URL"`                        // Optional Redis URL for distributed caching
	CachePrefix  string `env:"EVENTCAL_CACHE_PREFIX" envDefault:"evcal:"` // Redis key prefix
	CacheTTL     int    `env:"EVENTCAL_CACHE_TTL" envDefault:"300"`       // Reference-data cache TTL in seconds
	CacheMaxSize int    `env:"EVENTCAL_CACHE_MAX_SIZE" envDefault:"1000"` // Max memory cache entries

	// GeoIP configuration
	GeoIPDBPath string `env:"EVENTCAL_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Seeding configuration
	DoSeed bool `env:"EVENTCAL_DO_SEED" envDefault:"false"` // Enable reference-data seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// AIEnabled returns true if an AI provider API key is configured.
func (c Config) AIEnabled() bool {
	return c.AIAPIKey != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("EVENTCAL_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	switch strings.ToLower(cfg.Env) {
	case "development", "production", "test":
	default:
		return nil, fmt.Errorf("EVENTCAL_ENV must be development, production or test, got %q", cfg.Env)
	}

	return cfg, nil
}
