package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "storefront:state:"

// RedisBackend keeps each namespace in one hash.
type RedisBackend struct {
	client *redis.Client
}

// RedisOptions builds client options from a URL, or from addr/password when url is empty.
func RedisOptions(url, addr, password string) (*redis.Options, error) {
	if url != "" {
		opt, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		return opt, nil
	}
	return &redis.Options{Addr: addr, Password: password, DB: 0}, nil
}

func ConnectRedis(ctx context.Context, opt *redis.Options) (*RedisBackend, error) {
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return NewRedisBackend(client), nil
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (r *RedisBackend) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, redisKeyPrefix+namespace, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisBackend) Set(ctx context.Context, namespace, key, value string) error {
	return r.client.HSet(ctx, redisKeyPrefix+namespace, key, value).Err()
}

func (r *RedisBackend) Delete(ctx context.Context, namespace, key string) error {
	return r.client.HDel(ctx, redisKeyPrefix+namespace, key).Err()
}

func (r *RedisBackend) Clear(ctx context.Context, namespace string) error {
	return r.client.Del(ctx, redisKeyPrefix+namespace).Err()
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}
