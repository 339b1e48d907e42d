package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"golang.org/x/sync/errgroup"
)

// HeightResolver maps wall clock instants to block heights.
type HeightResolver struct {
	blocks BlockIndex
}

// NewHeightResolver creates a resolver over the block index.
func NewHeightResolver(blocks BlockIndex) (*HeightResolver, error) {
	if blocks == nil {
		return nil, errors.New("block index is required")
	}
	return &HeightResolver{blocks: blocks}, nil
}

// HeightAt returns the highest height whose block timestamp is <= instant.
// Instants before genesis resolve to 0, instants after the latest block to the latest height.
func (r *HeightResolver) HeightAt(ctx context.Context, instant time.Time) (uint64, error) {
	first, err := r.blocks.FirstBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("first block: %w", err)
	}
	if instant.Before(first.Timestamp) {
		return 0, nil
	}

	latest, err := r.blocks.LatestBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("latest block: %w", err)
	}
	if !instant.Before(latest.Timestamp) {
		return latest.Height, nil
	}

	// invariant: block at or below lo is <= instant, block hi is > instant
	lo, hi, best := first.Height, latest.Height, first.Height
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		b, err := r.blocks.BlockAtOrBelow(ctx, mid)
		if err != nil {
			return 0, fmt.Errorf("probe height %d: %w", mid, err)
		}
		if !b.Timestamp.After(instant) {
			lo, best = mid, b.Height
		} else {
			hi = b.Height
		}
	}
	return best, nil
}

// Range resolves both ends of tr concurrently.
func (r *HeightResolver) Range(ctx context.Context, tr model.TimeRange) (model.HeightRange, error) {
	var from, to uint64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := r.HeightAt(gctx, tr.Start)
		if err != nil {
			return fmt.Errorf("height at start: %w", err)
		}
		from = h
		return nil
	})
	g.Go(func() error {
		h, err := r.HeightAt(gctx, tr.End)
		if err != nil {
			return fmt.Errorf("height at end: %w", err)
		}
		to = h
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.HeightRange{}, err
	}

	return model.NewHeightRange(from, to)
}
