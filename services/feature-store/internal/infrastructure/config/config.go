package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the feature store runtime configuration.
type Config struct {
	HTTPPort       string
	AllowedOrigins []string
	Environment    string
	LogLevel       string
}

// Load reads configuration from the environment with sane defaults for
// local development.
func Load() *Config {
	return &Config{
		HTTPPort:       getEnv("PORT", "8082"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
