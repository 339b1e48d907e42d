package balance

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	lru "github.com/hashicorp/golang-lru/v2"
)

const tierLocal = "local"

type cacheKey struct {
	account model.AccountID
	height  uint64
}

// Cache is a bounded LRU of (account, height) balances. Entries never expire.
type Cache struct {
	entries *lru.Cache[cacheKey, model.Balance]
	metrics Metrics
}

// NewCache creates a cache holding at most size entries.
func NewCache(size int, metrics Metrics) (*Cache, error) {
	if metrics == nil {
		return nil, errors.New("balance cache metrics is required")
	}
	entries, err := lru.New[cacheKey, model.Balance](size)
	if err != nil {
		return nil, fmt.Errorf("create balance lru: %w", err)
	}
	return &Cache{entries: entries, metrics: metrics}, nil
}

// Get returns the cached balance and marks it as recently used.
func (c *Cache) Get(account model.AccountID, height uint64) (model.Balance, bool) {
	balance, ok := c.entries.Get(cacheKey{account: account, height: height})
	c.metrics.ObserveLookup(tierLocal, ok)
	return balance, ok
}

// Put stores balance, evicting the least recently used entry when full.
func (c *Cache) Put(account model.AccountID, height uint64, balance model.Balance) {
	c.entries.Add(cacheKey{account: account, height: height}, balance)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}
