package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
)

// BlockAtOrBelow returns the highest indexed block whose height is <= height.
func (r *Repository) BlockAtOrBelow(ctx context.Context, height uint64) (model.Block, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_at_or_below", err, start)
	}()

	const query = `
SELECT height, timestamp
FROM near_blocks
WHERE height <= ?
ORDER BY height DESC
LIMIT 1`

	var block model.Block
	block, err = r.queryBlock(ctx, query, height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block at or below %d: %w", height, err)
	}
	return block, nil
}

// LatestBlock returns the most recent indexed block.
func (r *Repository) LatestBlock(ctx context.Context) (model.Block, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("latest_block", err, start)
	}()

	const query = `
SELECT height, timestamp
FROM near_blocks
ORDER BY height DESC
LIMIT 1`

	var block model.Block
	block, err = r.queryBlock(ctx, query)
	if err != nil {
		return model.Block{}, fmt.Errorf("latest block: %w", err)
	}
	return block, nil
}

// FirstBlock returns the earliest indexed block.
func (r *Repository) FirstBlock(ctx context.Context) (model.Block, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("first_block", err, start)
	}()

	const query = `
SELECT height, timestamp
FROM near_blocks
ORDER BY height ASC
LIMIT 1`

	var block model.Block
	block, err = r.queryBlock(ctx, query)
	if err != nil {
		return model.Block{}, fmt.Errorf("first block: %w", err)
	}
	return block, nil
}

func (r *Repository) queryBlock(ctx context.Context, query string, args ...any) (block model.Block, err error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return model.Block{}, fmt.Errorf("query block: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Block{}, fmt.Errorf("iterate block: %w", err)
		}
		return model.Block{}, model.ErrBlockNotFound
	}
	if err = rows.Scan(&block.Height, &block.Timestamp); err != nil {
		return model.Block{}, fmt.Errorf("scan block: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Block{}, fmt.Errorf("iterate block: %w", err)
	}
	block.Timestamp = block.Timestamp.UTC()

	return block, nil
}
