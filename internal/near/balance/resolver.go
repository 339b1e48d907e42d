package balance

import (
	"context"
	"errors"
	"strconv"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Resolver serves balances from the local cache, then the shared cache, then the chain.
type Resolver struct {
	local    LocalCache
	shared   SharedCache
	fetcher  Fetcher
	coalesce bool
	group    singleflight.Group
	logger   *zap.Logger
}

// NewResolver wires the tiers. shared may be nil.
func NewResolver(local LocalCache, shared SharedCache, fetcher Fetcher, coalesce bool, logger *zap.Logger) (*Resolver, error) {
	if local == nil {
		return nil, errors.New("balance resolver local cache is required")
	}
	if fetcher == nil {
		return nil, errors.New("balance resolver fetcher is required")
	}
	if logger == nil {
		return nil, errors.New("balance resolver logger is required")
	}
	return &Resolver{
		local:    local,
		shared:   shared,
		fetcher:  fetcher,
		coalesce: coalesce,
		logger:   logger.Named("balance_resolver"),
	}, nil
}

// Resolve returns the balance of account at height.
// ErrAccountNotFound is returned to the caller and nothing is cached for it.
func (r *Resolver) Resolve(ctx context.Context, account model.AccountID, height uint64) (model.Balance, error) {
	if balance, ok := r.local.Get(account, height); ok {
		return balance, nil
	}
	if !r.coalesce {
		return r.load(ctx, account, height)
	}

	// The shared load outlives any single caller; the chain client bounds it
	// with its per-attempt timeout and retry budget.
	shared := context.WithoutCancel(ctx)
	key := string(account) + "@" + strconv.FormatUint(height, 10)
	ch := r.group.DoChan(key, func() (any, error) {
		return r.load(shared, account, height)
	})
	select {
	case <-ctx.Done():
		return model.Balance{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.Balance{}, res.Err
		}
		return res.Val.(model.Balance), nil
	}
}

func (r *Resolver) load(ctx context.Context, account model.AccountID, height uint64) (model.Balance, error) {
	if r.shared != nil {
		balance, ok, err := r.shared.Get(ctx, account, height)
		switch {
		case err != nil:
			r.logger.Warn("shared balance cache lookup failed",
				zap.String("account", string(account)),
				zap.Uint64("height", height),
				zap.Error(err),
			)
		case ok:
			r.local.Put(account, height, balance)
			return balance, nil
		}
	}

	balance, err := r.fetcher.FetchBalance(ctx, account, height)
	if err != nil {
		return model.Balance{}, err
	}

	r.local.Put(account, height, balance)
	if r.shared != nil {
		if err := r.shared.Put(ctx, account, height, balance); err != nil {
			r.logger.Warn("shared balance cache store failed",
				zap.String("account", string(account)),
				zap.Uint64("height", height),
				zap.Error(err),
			)
		}
	}
	return balance, nil
}
