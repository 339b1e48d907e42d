package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tta-backend/internal/clock"
	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"github.com/goodnatureofminers/tta-backend/pkg/safe"
)

// BlockAtOrBelow returns the highest block whose height is <= height.
func (r *Repository) BlockAtOrBelow(ctx context.Context, height uint64) (model.Block, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_at_or_below", err, start)
	}()

	const query = `
SELECT block_height::bigint, block_timestamp::bigint
FROM blocks
WHERE block_height <= $1
ORDER BY block_height DESC
LIMIT 1`

	var h int64
	h, err = safe.Int64(height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block height param: %w", err)
	}

	var block model.Block
	block, err = r.queryBlock(ctx, query, h)
	if err != nil {
		return model.Block{}, fmt.Errorf("block at or below %d: %w", height, err)
	}
	return block, nil
}

// LatestBlock returns the most recent block.
func (r *Repository) LatestBlock(ctx context.Context) (model.Block, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("latest_block", err, start)
	}()

	const query = `
SELECT block_height::bigint, block_timestamp::bigint
FROM blocks
ORDER BY block_height DESC
LIMIT 1`

	var block model.Block
	block, err = r.queryBlock(ctx, query)
	if err != nil {
		return model.Block{}, fmt.Errorf("latest block: %w", err)
	}
	return block, nil
}

// FirstBlock returns the earliest block.
func (r *Repository) FirstBlock(ctx context.Context) (model.Block, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("first_block", err, start)
	}()

	const query = `
SELECT block_height::bigint, block_timestamp::bigint
FROM blocks
ORDER BY block_height ASC
LIMIT 1`

	var block model.Block
	block, err = r.queryBlock(ctx, query)
	if err != nil {
		return model.Block{}, fmt.Errorf("first block: %w", err)
	}
	return block, nil
}

func (r *Repository) queryBlock(ctx context.Context, query string, args ...any) (model.Block, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return model.Block{}, fmt.Errorf("query block: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Block{}, fmt.Errorf("iterate block: %w", err)
		}
		return model.Block{}, model.ErrBlockNotFound
	}

	var height, timestamp int64
	if err := rows.Scan(&height, &timestamp); err != nil {
		return model.Block{}, fmt.Errorf("scan block: %w", err)
	}
	if err := rows.Err(); err != nil {
		return model.Block{}, fmt.Errorf("iterate block: %w", err)
	}

	h, err := safe.Uint64(height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block height: %w", err)
	}
	return model.Block{Height: h, Timestamp: clock.FromUnixNano(timestamp)}, nil
}
