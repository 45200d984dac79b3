package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all configuration for the ML service.
type Config struct {
	HTTPPort       string
	KafkaBrokers   []string
	AllowedOrigins []string
	ModelStorePath string
	Environment    string
	LogLevel       string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		HTTPPort:       getEnv("PORT", "8080"),
		KafkaBrokers:   strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		ModelStorePath: getEnv("MODEL_STORE_PATH", "./models"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
