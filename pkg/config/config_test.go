package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_APIConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("MEDQUEUE_API_ORIGIN", "https://medqueue.example.kz")
	os.Setenv("MEDQUEUE_CACHE_TTL_MS", "30000")
	defer func() {
		os.Unsetenv("MEDQUEUE_API_ORIGIN")
		os.Unsetenv("MEDQUEUE_CACHE_TTL_MS")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "https://medqueue.example.kz", cfg.API.Origin)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("MEDQUEUE_API_ORIGIN")
	os.Unsetenv("MEDQUEUE_CACHE_TTL_MS")
	os.Unsetenv("MEDQUEUE_SEARCH_DEBOUNCE_MS")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "http://127.0.0.1:8001", cfg.API.Origin)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 220*time.Millisecond, cfg.Listing.DebounceQuiet)
	assert.Equal(t, "medqueue_hospitals_cache", cfg.Cache.Key)
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
}
