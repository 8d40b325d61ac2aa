package store

import (
	"context"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"
)

// The redis store implements the Cache interface using Redis as the backend,
// so the resolved identifiers survive restarts and are shared between replicas.
// The keys namespace is organized as follows:
// - `/<prefix>/cache/<key>` for storing the value

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns Cache backed by Redis
func NewRedisStore(client *redis.Client, prefix string) Cache {
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func (m *redisStore) getRedisKey(key string) string {
	return path.Join(m.prefix, "cache", key)
}

func (m *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := m.client.Get(ctx, m.getRedisKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		logger.ContextKV(ctx, xlog.ERROR, "reason", "get", "key", key, "err", err.Error())
		return "", false, errors.Wrap(err, "failed to get value from Redis")
	}
	return val, true, nil
}

func (m *redisStore) Set(ctx context.Context, key, value string) error {
	err := m.client.Set(ctx, m.getRedisKey(key), value, 0).Err()
	if err != nil {
		return errors.Wrap(err, "failed to store value in Redis")
	}
	return nil
}
