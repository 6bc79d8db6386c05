package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig
	Cache   CacheConfig
	Listing ListingConfig
	Redis   RedisConfig
}

// APIConfig holds booking backend configuration
type APIConfig struct {
	Origin  string
	Timeout time.Duration
}

// CacheConfig holds hospital listing cache configuration
type CacheConfig struct {
	Key string
	TTL time.Duration
}

// ListingConfig holds listing view configuration
type ListingConfig struct {
	DebounceQuiet time.Duration
}

// RedisConfig holds Redis configuration for the durable key-value store
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		API: APIConfig{
			Origin:  getEnv("MEDQUEUE_API_ORIGIN", "http://127.0.0.1:8001"),
			Timeout: getEnvAsMillis("MEDQUEUE_API_TIMEOUT_MS", 10_000),
		},
		Cache: CacheConfig{
			Key: getEnv("MEDQUEUE_CACHE_KEY", "medqueue_hospitals_cache"),
			TTL: getEnvAsMillis("MEDQUEUE_CACHE_TTL_MS", 120_000),
		},
		Listing: ListingConfig{
			DebounceQuiet: getEnvAsMillis("MEDQUEUE_SEARCH_DEBOUNCE_MS", 220),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
	}, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsMillis(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultValue)) * time.Millisecond
}
