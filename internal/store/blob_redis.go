package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBlob keeps the record blob under the Namespace key in Redis, for
// installs that want the data to survive the host machine.
type RedisBlob struct {
	client *redis.Client
	key    string
}

// NewRedisBlob connects to Redis at url and verifies the connection.
func NewRedisBlob(ctx context.Context, url string) (*RedisBlob, error) {
	if url == "" {
		return nil, fmt.Errorf("redis URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisBlob{client: client, key: Namespace}, nil
}

func (b *RedisBlob) Get(ctx context.Context) ([]byte, bool, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", b.key, err)
	}
	return data, true, nil
}

func (b *RedisBlob) Put(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("writing %s: %w", b.key, err)
	}
	return nil
}

// Close shuts down the Redis client.
func (b *RedisBlob) Close() error {
	return b.client.Close()
}

// HealthCheck verifies the connection is alive.
func (b *RedisBlob) HealthCheck(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
