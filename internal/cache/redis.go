package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the cache with Redis. A nil client is tolerated: every
// operation degrades to a miss or a no-op so that a Redis outage never fails
// a request.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client. client may be nil.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.client == nil {
		return nil, ErrMiss
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.client == nil {
		return nil
	}
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) DeleteMany(ctx context.Context, keys []string) error {
	if s.client == nil || len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Clear removes every key in the current database. Catalog writes on
// categories and subcategories use this deliberately broad invalidation.
func (s *RedisStore) Clear(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.FlushDB(ctx).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if s.client == nil {
		return ErrMiss
	}
	return s.client.Ping(ctx).Err()
}
