package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default upstream settings
const (
	DefaultUpstreamBaseURL = "https://park-theta.vercel.app/api"
	DefaultUpstreamTimeout = 10 * time.Second
)

// Config holds all configuration for the application
type Config struct {
	Environment string `validate:"required"`
	Port        string `validate:"required,numeric"`
	Upstream    UpstreamConfig
	Logging     LoggingConfig
}

// UpstreamConfig holds the Park API connection settings
type UpstreamConfig struct {
	BaseURL string        `validate:"required,url"`
	Token   string        // passed through as a bearer token, never validated
	Timeout time.Duration `validate:"gt=0"`
}

// LoggingConfig holds logrus settings
type LoggingConfig struct {
	Level  string `validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `validate:"oneof=json text"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PARK_API_BASE_URL", DefaultUpstreamBaseURL)
	v.SetDefault("UPSTREAM_TIMEOUT", DefaultUpstreamTimeout)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Upstream: UpstreamConfig{
			BaseURL: v.GetString("PARK_API_BASE_URL"),
			Token:   v.GetString("PARK_API_TOKEN"),
			Timeout: v.GetDuration("UPSTREAM_TIMEOUT"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
