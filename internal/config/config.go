package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultBackendURL is used by clients when BACKEND_URL is unset
const DefaultBackendURL = "http://localhost:8000"

// Config holds all configuration for the API server
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	CORS     CORSConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	RequestTimeout  int
	ShutdownTimeout int
}

// DatabaseConfig selects the store. An empty URL means in-memory.
type DatabaseConfig struct {
	URL string
}

// CacheConfig enables the Redis customer cache when Addr is set
type CacheConfig struct {
	Addr string
	TTL  time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// ClientConfig is the configuration of the command-line client
type ClientConfig struct {
	BackendURL string
	LogLevel   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8000"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			RequestTimeout:  getEnvAsInt("REQUEST_TIMEOUT", 60),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Cache: CacheConfig{
			Addr: getEnv("REDIS_ADDR", ""),
			TTL:  time.Duration(getEnvAsInt("CACHE_TTL", 3600)) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one CORS origin must be configured")
	}

	if c.Cache.Addr != "" && c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when REDIS_ADDR is set")
	}

	return validateLogLevel(c.LogLevel)
}

// LoadClient reads the client configuration. The backend URL falls back to
// DefaultBackendURL.
func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{
		BackendURL: strings.TrimRight(getEnv("BACKEND_URL", DefaultBackendURL), "/"),
		LogLevel:   getEnv("LOG_LEVEL", "warn"),
	}
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func validateLogLevel(level string) error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
