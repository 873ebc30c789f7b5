package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Supabase
	SupabaseURL            string `env:"SUPABASE_URL"`
	SupabasePublishableKey string `env:"SUPABASE_PUBLISHABLE_KEY"`
	SupabaseJWTSecret      string `env:"SUPABASE_JWT_SECRET"`
	SupabaseStorageBucket  string `env:"SUPABASE_STORAGE_BUCKET" envDefault:"order-attachments"`

	// Database
	DatabaseURL string `env:"DATABASE_URL"`

	// Presence
	PresenceTTL           time.Duration `env:"PRESENCE_TTL" envDefault:"90s"`
	PresenceSweepInterval time.Duration `env:"PRESENCE_SWEEP_INTERVAL" envDefault:"30s"`

	// Session
	SessionCookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
	SessionCacheTTL   time.Duration `env:"SESSION_CACHE_TTL" envDefault:"5m"`

	// Routing
	LoginPath     string `env:"LOGIN_PATH" envDefault:"/auth/login"`
	DashboardPath string `env:"DASHBOARD_PATH" envDefault:"/dashboard"`

	// Server
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
}

func Load() (*Config, error) {
	// A missing .env is fine, deployments set real environment variables
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.PresenceSweepInterval > c.PresenceTTL {
		return fmt.Errorf("PRESENCE_SWEEP_INTERVAL must not exceed PRESENCE_TTL")
	}
	return nil
}
