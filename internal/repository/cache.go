package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const averageAttemptsKey = "MOVES_REMAINING"

type RedisStatCache struct {
	client *redis.Client
}

func NewRedisStatCache(client *redis.Client) *RedisStatCache {
	return &RedisStatCache{client: client}
}

func (r *RedisStatCache) GetAverageAttempts(ctx context.Context) (string, bool, error) {
	v, err := r.client.Get(ctx, averageAttemptsKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisStatCache) SetAverageAttempts(ctx context.Context, value string) error {
	return r.client.Set(ctx, averageAttemptsKey, value, 0).Err()
}
