// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package config loads application configuration from environment
// variables. A .env file in the working directory is honored when
// present.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"COMMONCONTENT_DB_PATH" envDefault:"./data/commoncontent.db"`
	ServerHost string `env:"COMMONCONTENT_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"COMMONCONTENT_SERVER_PORT" envDefault:"8000"`
	Env        string `env:"COMMONCONTENT_ENV" envDefault:"development"`
	LogLevel   string `env:"COMMONCONTENT_LOG_LEVEL" envDefault:"info"`

	MediaDir    string `env:"COMMONCONTENT_MEDIA_DIR" envDefault:"./media"`
	ContentDir  string `env:"COMMONCONTENT_CONTENT_DIR" envDefault:"./content"`
	TemplateDir string `env:"COMMONCONTENT_TEMPLATE_DIR"` // Overrides the embedded templates

	// Default site, used by the importer and seeder
	SiteDomain string `env:"COMMONCONTENT_SITE_DOMAIN" envDefault:"localhost"`
	SiteName   string `env:"COMMONCONTENT_SITE_NAME" envDefault:"Common Content"`
	LangCode   string `env:"COMMONCONTENT_LANGUAGE_CODE" envDefault:"en-us"`

	// Cache configuration
	RedisURL     string `env:"COMMONCONTENT_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"COMMONCONTENT_CACHE_PREFIX" envDefault:"cc:"`     // Redis key prefix
	CacheTTL     int    `env:"COMMONCONTENT_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"COMMONCONTENT_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Rate limiting: requests per second per client, 0 disables
	RateLimit float64 `env:"COMMONCONTENT_RATE_LIMIT" envDefault:"0"`
	RateBurst int     `env:"COMMONCONTENT_RATE_BURST" envDefault:"20"`

	// Seeding configuration
	DoSeed bool `env:"COMMONCONTENT_DO_SEED" envDefault:"false"` // Enable database seeding
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

// RateLimitEnabled returns true if request rate limiting is configured.
func (c Config) RateLimitEnabled() bool {
	return c.RateLimit > 0
}

// Load parses environment variables and returns a Config struct. Values
// from a .env file are loaded first; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("COMMONCONTENT_SERVER_PORT out of range: %d", cfg.ServerPort)
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("COMMONCONTENT_RATE_LIMIT must not be negative")
	}

	return cfg, nil
}
