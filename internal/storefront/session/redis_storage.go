package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "storefront:session:"

// RedisStorage keeps each namespace in one Redis hash whose expiry is
// refreshed on every write.
type RedisStorage struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisStorage builds a storage over client. A non-positive ttl keeps
// namespaces until they are cleared.
func NewRedisStorage(client redis.Cmdable, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, prefix: defaultKeyPrefix, ttl: ttl}
}

func (r *RedisStorage) key(namespace string) string {
	return r.prefix + namespace
}

func (r *RedisStorage) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	value, err := r.client.HGet(ctx, r.key(namespace), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *RedisStorage) Set(ctx context.Context, namespace, key string, value []byte) error {
	hashKey := r.key(namespace)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hashKey, key, value)
		if r.ttl > 0 {
			pipe.Expire(ctx, hashKey, r.ttl)
		}
		return nil
	})
	return err
}

func (r *RedisStorage) Delete(ctx context.Context, namespace, key string) error {
	return r.client.HDel(ctx, r.key(namespace), key).Err()
}

func (r *RedisStorage) Clear(ctx context.Context, namespace string) error {
	return r.client.Del(ctx, r.key(namespace)).Err()
}
