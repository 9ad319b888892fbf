package storage

import (
	"context"
	"errors"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

// RedisBackend stores values through a gocache cache backed by Redis. Values
// never expire, a fresh import overwrites them.
type RedisBackend struct {
	client *redis.Client
	cache  *cache.Cache[string]
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	redisStore := redisstore.NewRedis(client)

	return &RedisBackend{
		client: client,
		cache:  cache.New[string](redisStore),
	}
}

func (r *RedisBackend) Put(ctx context.Context, key string, data string) error {
	return r.cache.Set(ctx, key, data)
}

func (r *RedisBackend) Get(ctx context.Context, key string) (string, error) {
	value, err := r.cache.Get(ctx, key)
	if errors.Is(err, redis.Nil) || errors.Is(err, store.NotFound{}) {
		return "", &NotFoundError{Key: key}
	} else if err != nil {
		return "", err
	}

	return value, nil
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	return r.cache.Delete(ctx, key)
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}
