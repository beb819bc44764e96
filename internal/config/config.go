package config

import (
	"os"
	"strconv"

	"sheettint/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Reader ReaderConfig
	Export ExportConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// ReaderConfig holds input parsing settings
type ReaderConfig struct {
	HeaderRows int
}

// ExportConfig holds default formatting behaviour
type ExportConfig struct {
	// Instructions is the instruction string used when a request does not
	// carry its own.
	Instructions string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Reader: ReaderConfig{
			HeaderRows: getEnvIntOrDefault("HEADER_ROWS", 1),
		},
		Export: ExportConfig{
			Instructions: getEnvOrDefault("INSTRUCTIONS", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Reader.HeaderRows < 1 {
		return errors.ConfigInvalid("HEADER_ROWS must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
