package jsonstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is where RedisBackend keeps the document.
const DefaultRedisKey = "claro:folders"

// RedisBackend stores the document under a single key.
type RedisBackend struct {
	client redis.Cmdable
	key    string
	addr   string
}

// NewRedisBackend wraps an existing client. An empty key uses DefaultRedisKey.
func NewRedisBackend(client redis.Cmdable, key, addr string) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{client: client, key: key, addr: addr}
}

func (r *RedisBackend) Location() string { return fmt.Sprintf("redis://%s/%s", r.addr, r.key) }

func (r *RedisBackend) Read(ctx context.Context) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, r.key)
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return b, nil
}

func (r *RedisBackend) Write(ctx context.Context, b []byte) error {
	if err := r.client.Set(ctx, r.key, b, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Backup stores b under the document key with CorruptSuffix appended.
func (r *RedisBackend) Backup(ctx context.Context, b []byte) (string, error) {
	key := r.key + CorruptSuffix
	if err := r.client.Set(ctx, key, b, 0).Err(); err != nil {
		return "", fmt.Errorf("redis set: %w", err)
	}
	return fmt.Sprintf("redis://%s/%s", r.addr, key), nil
}
