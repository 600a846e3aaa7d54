package implementation

import (
	"context"
	"errors"
	"fmt"

	"ai-assistant-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

// RedisKeyValueStore backs the session catalog with Redis. Keys are
// namespaced so several deployments can share one instance.
type RedisKeyValueStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisKeyValueStore(rdb *redis.Client, prefix string) contract.KeyValueStore {
	return &RedisKeyValueStore{
		rdb:    rdb,
		prefix: prefix,
	}
}

func (s *RedisKeyValueStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return fmt.Sprintf("%s:%s", s.prefix, k)
}

func (s *RedisKeyValueStore) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		// Transport failures also read as "not found"; load is fail-open
		// by contract.
		return "", false
	}
	return val, true
}

func (s *RedisKeyValueStore) Set(ctx context.Context, key, value string) error {
	// No TTL: catalogs live until explicitly rewritten.
	return s.rdb.Set(ctx, s.key(key), value, 0).Err()
}
