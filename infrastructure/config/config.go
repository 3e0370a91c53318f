package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backends
const (
	StoreBackendFile   = "file"
	StoreBackendMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	Environment string

	// Logging
	LogLevel string

	// Graph storage
	StoreBackend string
	StoreDir     string

	// Presentation read model
	MemoTimeout        time.Duration
	SlowQueryThreshold time.Duration

	// Feature flags
	ValidateOnSave bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		StoreBackend: getEnv("FLOW_STORE_BACKEND", StoreBackendFile),
		StoreDir:     getEnv("FLOW_STORE_DIR", "flows"),

		MemoTimeout:        getEnvDuration("FLOW_MEMO_TIMEOUT", 2*time.Second),
		SlowQueryThreshold: getEnvDuration("FLOW_SLOW_QUERY", 50*time.Millisecond),

		ValidateOnSave: getEnvBool("FLOW_VALIDATE_ON_SAVE", false),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreBackendFile:
		if c.StoreDir == "" {
			return fmt.Errorf("FLOW_STORE_DIR is required for the file backend")
		}
	case StoreBackendMemory:
	default:
		return fmt.Errorf("unknown FLOW_STORE_BACKEND %q", c.StoreBackend)
	}

	if c.MemoTimeout <= 0 {
		return fmt.Errorf("FLOW_MEMO_TIMEOUT must be positive")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts a Go duration ("500ms") or whole seconds ("3")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs := getEnvInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
