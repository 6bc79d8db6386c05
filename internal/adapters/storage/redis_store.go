package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/medqueue/medqueue-go/internal/domain/providers"
)

// RedisStore implements the KeyValueStore interface using Redis. Values are
// stored without expiration; staleness of cached data is tracked by the
// entries themselves, not by the store.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed key-value store
func NewRedisStore(client *redis.Client) providers.KeyValueStore {
	return &RedisStore{
		client: client,
	}
}

// Get retrieves the value stored under key
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from store: %w", err)
	}
	return result, nil
}

// Set stores a value under key
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set in store: %w", err)
	}
	return nil
}

// Remove deletes the value stored under key
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to remove from store: %w", err)
	}
	return nil
}
