// Package config provides configuration management for the application
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// ProviderConfig holds all room-provider-related configuration
type ProviderConfig struct {
	BaseURL string
	Timeout time.Duration
	// PageSize is the page size used for list-room and list-user calls
	PageSize int
	// EnrichLimit caps how many rooms a single usage report enriches
	EnrichLimit int
	// EnrichInterval is the minimum spacing between per-room detail calls
	EnrichInterval time.Duration
}

// RedisConfig holds Redis/Valkey configuration
type RedisConfig struct {
	Enabled bool
	// URI is prioritized if provided, otherwise individual connection parameters are used
	URI       string
	Host      string
	Port      string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
	// TTL for account records (0 means no expiration)
	RecordTTL time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	// DashboardRefreshInterval controls how often the web dashboard rebuilds
	// the usage report it streams to connected clients
	DashboardRefreshInterval time.Duration
	// DashboardToken is the provider access token the background refresher
	// uses; the API routes take their token from the request instead
	DashboardToken string
}

// GetProviderConfig loads room-provider configuration from environment variables
func GetProviderConfig() ProviderConfig {
	timeoutSecs, _ := strconv.Atoi(getEnv("PROVIDER_TIMEOUT_SECONDS", "30"))
	pageSize, _ := strconv.Atoi(getEnv("PROVIDER_PAGE_SIZE", "50"))
	enrichLimit, _ := strconv.Atoi(getEnv("PROVIDER_ENRICH_LIMIT", "50"))
	enrichMillis, _ := strconv.Atoi(getEnv("PROVIDER_ENRICH_INTERVAL_MS", "100"))

	return ProviderConfig{
		BaseURL:        getEnv("PROVIDER_BASE_URL", "https://api.roomprovider.example"),
		Timeout:        time.Duration(timeoutSecs) * time.Second,
		PageSize:       pageSize,
		EnrichLimit:    enrichLimit,
		EnrichInterval: time.Duration(enrichMillis) * time.Millisecond,
	}
}

// GetRedisConfig loads Redis/Valkey configuration from environment variables
func GetRedisConfig() RedisConfig {
	// Parse TTL from environment variable (in hours)
	ttlHours, _ := strconv.Atoi(getEnv("REDIS_RECORD_TTL_HOURS", "0")) // Default: no expiry
	ttl := time.Duration(ttlHours) * time.Hour

	// Parse DB index
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return RedisConfig{
		Enabled:   getEnvBool("REDIS_ENABLED", false),
		URI:       getEnv("REDIS_URI_ROOMBOARD", ""),
		Host:      getEnv("REDIS_HOST_ROOMBOARD", getEnv("REDIS_ADDRESS", "localhost")),
		Port:      getEnv("REDIS_PORT_ROOMBOARD", "6379"),
		Username:  getEnv("REDIS_USERNAME_ROOMBOARD", ""),
		Password:  getEnv("REDIS_PASSWORD_ROOMBOARD", getEnv("REDIS_PASSWORD", "")),
		DB:        db,
		KeyPrefix: getEnv("REDIS_KEY_PREFIX", "roomboard:"),
		RecordTTL: ttl,
	}
}

// GetServerConfig loads HTTP server configuration from environment variables
func GetServerConfig() ServerConfig {
	refreshSecs, _ := strconv.Atoi(getEnv("DASHBOARD_REFRESH_SECONDS", "60"))

	return ServerConfig{
		Port:                     getEnv("PORT", "8080"),
		DashboardRefreshInterval: time.Duration(refreshSecs) * time.Second,
		DashboardToken:           getEnv("DASHBOARD_PROVIDER_TOKEN", ""),
	}
}

// GetLogLevel parses LOG_LEVEL into a zerolog level, defaulting to info
func GetLogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool retrieves a boolean environment variable
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
