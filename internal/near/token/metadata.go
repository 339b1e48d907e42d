// Package token recognizes fungible token movements and resolves NEP-148 token metadata.
package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Caller runs contract view methods.
type Caller interface {
	CallFunction(ctx context.Context, contract model.AccountID, method string, args []byte) ([]byte, error)
}

const maxDecimals = 64

// MetadataCache memoizes ft_metadata per contract for the lifetime of the process.
type MetadataCache struct {
	caller  Caller
	entries *lru.Cache[model.AccountID, model.FTMetadata]
	group   singleflight.Group
}

// NewMetadataCache creates a cache for up to size contracts.
func NewMetadataCache(caller Caller, size int) (*MetadataCache, error) {
	if caller == nil {
		return nil, errors.New("token metadata caller is required")
	}
	entries, err := lru.New[model.AccountID, model.FTMetadata](size)
	if err != nil {
		return nil, fmt.Errorf("create metadata lru: %w", err)
	}
	return &MetadataCache{caller: caller, entries: entries}, nil
}

// Metadata returns symbol and decimals of contract. Failures are not cached.
func (c *MetadataCache) Metadata(ctx context.Context, contract model.AccountID) (model.FTMetadata, error) {
	if m, ok := c.entries.Get(contract); ok {
		return m, nil
	}

	// Shared by every waiter; detached from the first caller's cancellation.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(string(contract), func() (any, error) {
		raw, err := c.caller.CallFunction(shared, contract, "ft_metadata", []byte("{}"))
		if err != nil {
			return nil, err
		}
		m, err := parseMetadata(raw)
		if err != nil {
			return nil, err
		}
		c.entries.Add(contract, m)
		return m, nil
	})
	select {
	case <-ctx.Done():
		return model.FTMetadata{}, fmt.Errorf("ft_metadata of %s: %w", contract, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return model.FTMetadata{}, fmt.Errorf("ft_metadata of %s: %w", contract, res.Err)
		}
		return res.Val.(model.FTMetadata), nil
	}
}

func parseMetadata(raw []byte) (model.FTMetadata, error) {
	if !gjson.ValidBytes(raw) {
		return model.FTMetadata{}, errors.New("malformed metadata json")
	}
	symbol := gjson.GetBytes(raw, "symbol")
	decimals := gjson.GetBytes(raw, "decimals")
	if !symbol.Exists() || !decimals.Exists() {
		return model.FTMetadata{}, errors.New("metadata lacks symbol or decimals")
	}
	d := decimals.Int()
	if d < 0 || d > maxDecimals {
		return model.FTMetadata{}, fmt.Errorf("unsupported decimals %d", d)
	}
	return model.FTMetadata{Symbol: symbol.String(), Decimals: int32(d)}, nil
}
