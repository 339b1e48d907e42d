package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"github.com/goodnatureofminers/tta-backend/pkg/workerpool"
	"go.uber.org/zap"
)

const defaultBalanceWorkers = 4

// BalancesAssembler writes start and end balances of each account.
type BalancesAssembler struct {
	heights  *HeightResolver
	balances BalanceResolver
	workers  int
	metrics  Metrics
	logger   *zap.Logger
}

// NewBalancesAssembler wires the assembler; workers bounds concurrent accounts.
func NewBalancesAssembler(heights *HeightResolver, balances BalanceResolver, workers int, metrics Metrics, logger *zap.Logger) (*BalancesAssembler, error) {
	if heights == nil {
		return nil, errors.New("height resolver is required")
	}
	if balances == nil {
		return nil, errors.New("balance resolver is required")
	}
	if metrics == nil {
		return nil, errors.New("report metrics is required")
	}
	if logger == nil {
		return nil, errors.New("report logger is required")
	}
	if workers <= 0 {
		workers = defaultBalanceWorkers
	}
	return &BalancesAssembler{
		heights:  heights,
		balances: balances,
		workers:  workers,
		metrics:  metrics,
		logger:   logger.Named("balances_report"),
	}, nil
}

// Build emits one row per account in request order. Per-account failures become
// markers in the affected cells and never stop other accounts.
func (a *BalancesAssembler) Build(ctx context.Context, req model.BalancesRequest, sink Sink) (err error) {
	started := time.Now()
	rows := 0
	defer func() {
		a.metrics.ObserveBuild(err, rows, started)
	}()

	heights, err := a.heights.Range(ctx, req.TimeRange)
	if err != nil {
		return fmt.Errorf("resolve height range: %w", err)
	}

	if err := sink.Write(ctx, BalancesHeader()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	return workerpool.ProcessOrdered(ctx, a.workers, req.Accounts,
		func(ctx context.Context, account model.AccountID) []string {
			return []string{
				string(account),
				a.cell(ctx, account, heights.From),
				a.cell(ctx, account, heights.To),
			}
		},
		func(ctx context.Context, record []string) error {
			if err := sink.Write(ctx, record); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
			rows++
			return nil
		},
	)
}

func (a *BalancesAssembler) cell(ctx context.Context, account model.AccountID, height uint64) string {
	balance, err := a.balances.Resolve(ctx, account, height)
	if err != nil && !errors.Is(err, model.ErrAccountNotFound) {
		a.logger.Warn("balance unavailable",
			zap.String("account", string(account)),
			zap.Uint64("height", height),
			zap.Error(err),
		)
	}
	return balanceCell(balance, err)
}
