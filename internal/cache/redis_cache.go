package cache

import (
	"context"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RedisBalanceCache stores party balances as plain decimal strings.
type RedisBalanceCache struct {
	client *redis.Client
}

func NewRedisBalanceCache(addr string, password string, db int) *RedisBalanceCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisBalanceCache{client: client}
}

func (c *RedisBalanceCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisBalanceCache) Close() error {
	return c.client.Close()
}

func (c *RedisBalanceCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}

	amount, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, err
	}
	return amount, true, nil
}

func (c *RedisBalanceCache) Set(ctx context.Context, key string, value decimal.Decimal, ttl time.Duration) error {
	return c.client.Set(ctx, key, value.String(), ttl).Err()
}

func (c *RedisBalanceCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
