package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"go.uber.org/zap"
)

// ReportConfig tunes the transaction report.
type ReportConfig struct {
	SkipZeroValueRows bool
}

// ReportAssembler streams the transaction report of a request into a sink.
type ReportAssembler struct {
	heights  *HeightResolver
	reader   *TransactionReader
	balances BalanceResolver
	rows     *rowBuilder
	cfg      ReportConfig
	metrics  Metrics
	logger   *zap.Logger
}

// NewReportAssembler wires the assembler.
func NewReportAssembler(
	heights *HeightResolver,
	reader *TransactionReader,
	balances BalanceResolver,
	tokens TokenMetadata,
	cfg ReportConfig,
	metrics Metrics,
	logger *zap.Logger,
) (*ReportAssembler, error) {
	if heights == nil || reader == nil {
		return nil, errors.New("height resolver and transaction reader are required")
	}
	if balances == nil {
		return nil, errors.New("balance resolver is required")
	}
	if tokens == nil {
		return nil, errors.New("token metadata is required")
	}
	if metrics == nil {
		return nil, errors.New("report metrics is required")
	}
	if logger == nil {
		return nil, errors.New("report logger is required")
	}
	logger = logger.Named("report")
	return &ReportAssembler{
		heights:  heights,
		reader:   reader,
		balances: balances,
		rows:     &rowBuilder{tokens: tokens, logger: logger},
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
	}, nil
}

// Build writes the header and one record per transaction, accounts in request order.
// The header is written together with the first record, so a store failure before any
// output fails the whole request. Later store failures are reported in a marker row.
func (a *ReportAssembler) Build(ctx context.Context, req model.ReportRequest, sink Sink) (err error) {
	started := time.Now()
	rows := 0
	defer func() {
		a.metrics.ObserveBuild(err, rows, started)
	}()

	heights, err := a.heights.Range(ctx, req.TimeRange)
	if err != nil {
		return fmt.Errorf("resolve height range: %w", err)
	}
	a.logger.Info("building transaction report",
		zap.Int("accounts", len(req.Accounts)),
		zap.Uint64("from_height", heights.From),
		zap.Uint64("to_height", heights.To),
		zap.Bool("include_balances", req.IncludeBalances),
	)

	header := TransactionHeader(req.IncludeBalances)
	headerWritten := false
	write := func(record []string) error {
		if !headerWritten {
			if err := sink.Write(ctx, header); err != nil {
				return fmt.Errorf("write header: %w", err)
			}
			headerWritten = true
		}
		if err := sink.Write(ctx, record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		return nil
	}

	for _, account := range req.Accounts {
		for tx, streamErr := range a.reader.Stream(ctx, account, heights, req.TimeRange) {
			if streamErr != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				if !headerWritten {
					return fmt.Errorf("stream transactions of %s: %w", account, streamErr)
				}
				a.logger.Error("transaction store failed mid report",
					zap.String("account", string(account)),
					zap.Error(streamErr),
				)
				if err := write(storeFailureRow(account, streamErr, len(header))); err != nil {
					return err
				}
				break
			}

			record, movesValue := a.rows.build(ctx, tx)
			if a.cfg.SkipZeroValueRows && !movesValue {
				continue
			}
			if req.IncludeBalances {
				balance, err := a.balances.Resolve(ctx, tx.AccountID, tx.BlockHeight)
				if err != nil {
					if ctxErr := ctx.Err(); ctxErr != nil {
						return ctxErr
					}
					if !errors.Is(err, model.ErrAccountNotFound) {
						a.logger.Warn("balance unavailable",
							zap.String("account", string(tx.AccountID)),
							zap.Uint64("height", tx.BlockHeight),
							zap.Error(err),
						)
					}
				}
				record = append(record, balanceCell(balance, err))
			}

			if err := write(record); err != nil {
				return err
			}
			rows++
		}
	}

	if !headerWritten {
		if err := sink.Write(ctx, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	return nil
}
