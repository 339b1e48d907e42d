// Package balance resolves point-in-time account balances through a cache hierarchy.
package balance

import (
	"context"
	"time"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Fetcher loads a balance from the chain.
	Fetcher interface {
		FetchBalance(ctx context.Context, account model.AccountID, height uint64) (model.Balance, error)
	}
	// LocalCache is the in-process tier.
	LocalCache interface {
		Get(account model.AccountID, height uint64) (model.Balance, bool)
		Put(account model.AccountID, height uint64, balance model.Balance)
	}
	// SharedCache is an optional tier shared between processes.
	SharedCache interface {
		Get(ctx context.Context, account model.AccountID, height uint64) (model.Balance, bool, error)
		Put(ctx context.Context, account model.AccountID, height uint64, balance model.Balance) error
	}
	// RedisClient is the subset of redis.Cmdable used by RedisCache.
	RedisClient interface {
		Get(ctx context.Context, key string) *redis.StringCmd
		Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	}
	// Metrics records cache effectiveness.
	Metrics interface {
		ObserveLookup(tier string, hit bool)
	}
)
