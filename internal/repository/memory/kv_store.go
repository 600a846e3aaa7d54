package memory

import (
	"context"

	"ai-assistant-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// KeyValueStore is an in-process stand-in for the Redis store, used in tests
// and when no REDIS_URL is configured. Entries never expire; "durable" here
// means the lifetime of the process.
type KeyValueStore struct {
	cache *cache.Cache
}

func NewKeyValueStore() contract.KeyValueStore {
	return &KeyValueStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *KeyValueStore) Get(_ context.Context, key string) (string, bool) {
	if x, found := s.cache.Get(key); found {
		return x.(string), true
	}
	return "", false
}

func (s *KeyValueStore) Set(_ context.Context, key, value string) error {
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}
