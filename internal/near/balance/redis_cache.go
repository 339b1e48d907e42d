package balance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"github.com/redis/go-redis/v9"
)

const (
	tierShared     = "redis"
	redisKeyPrefix = "tta:balance:"
)

// RedisCache stores encoded balances in redis under tta:balance:<account>:<height>.
type RedisCache struct {
	client  RedisClient
	ttl     time.Duration
	metrics Metrics
}

// NewRedisCache creates a shared cache tier. A zero ttl keeps entries until evicted by redis.
func NewRedisCache(client RedisClient, ttl time.Duration, metrics Metrics) (*RedisCache, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if metrics == nil {
		return nil, errors.New("redis cache metrics is required")
	}
	return &RedisCache{client: client, ttl: ttl, metrics: metrics}, nil
}

// Get returns the stored balance; a missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, account model.AccountID, height uint64) (model.Balance, bool, error) {
	raw, err := c.client.Get(ctx, redisKey(account, height)).Result()
	if errors.Is(err, redis.Nil) {
		c.metrics.ObserveLookup(tierShared, false)
		return model.Balance{}, false, nil
	}
	if err != nil {
		return model.Balance{}, false, fmt.Errorf("redis get balance: %w", err)
	}

	balance, err := model.DecodeBalance(raw)
	if err != nil {
		return model.Balance{}, false, fmt.Errorf("redis decode balance: %w", err)
	}
	c.metrics.ObserveLookup(tierShared, true)
	return balance, true, nil
}

// Put stores balance.
func (c *RedisCache) Put(ctx context.Context, account model.AccountID, height uint64, balance model.Balance) error {
	if err := c.client.Set(ctx, redisKey(account, height), balance.Encode(), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set balance: %w", err)
	}
	return nil
}

func redisKey(account model.AccountID, height uint64) string {
	return redisKeyPrefix + string(account) + ":" + strconv.FormatUint(height, 10)
}
