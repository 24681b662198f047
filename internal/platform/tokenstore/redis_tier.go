package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTier keeps the token under one key. A zero TTL makes the key durable;
// a positive TTL gives a session-scoped token that expires on its own.
type RedisTier struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

var _ Tier = (*RedisTier)(nil)

func NewRedisTier(rdb *redis.Client, key string, ttl time.Duration) *RedisTier {
	return &RedisTier{rdb: rdb, key: key, ttl: ttl}
}

func (r *RedisTier) Get(ctx context.Context) (string, bool, error) {
	token, err := r.rdb.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return token, token != "", nil
}

func (r *RedisTier) Set(ctx context.Context, token string) error {
	if err := r.rdb.Set(ctx, r.key, token, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisTier) Remove(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", r.key, err)
	}
	return nil
}
