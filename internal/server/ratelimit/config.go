package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
// Match runs drive paid model calls, so they get the strictest limits; reads
// fall back to the global default.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/roles/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
	}
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
