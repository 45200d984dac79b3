package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the API gateway.
type Config struct {
	HTTPPort           int
	FeatureStoreURL    string
	MLServiceURL       string
	RiskServiceURL     string
	CustomerServiceURL string
	PaymentServiceURL  string
	RateLimit          int // requests per second, per client
	LogLevel           string
	LogFormat          string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		HTTPPort:           getEnvInt("HTTP_PORT", 8000),
		FeatureStoreURL:    getEnv("FEATURE_STORE_URL", "http://feature-store:8082"),
		MLServiceURL:       getEnv("ML_SERVICE_URL", "http://ml-service:8080"),
		RiskServiceURL:     getEnv("RISK_SERVICE_URL", "http://risk-service:8081"),
		CustomerServiceURL: getEnv("CUSTOMER_SERVICE_URL", "http://customer-service:8083"),
		PaymentServiceURL:  getEnv("PAYMENT_SERVICE_URL", "http://payment-service:8084"),
		RateLimit:          getEnvInt("RATE_LIMIT", 100),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
