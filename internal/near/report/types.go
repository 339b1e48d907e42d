// Package report assembles transaction and balance reports for NEAR accounts.
package report

import (
	"context"
	"time"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// BlockIndex is the timestamp to height index of the store.
	BlockIndex interface {
		BlockAtOrBelow(ctx context.Context, height uint64) (model.Block, error)
		LatestBlock(ctx context.Context) (model.Block, error)
		FirstBlock(ctx context.Context) (model.Block, error)
	}
	// TransactionStore returns keyset pages of transactions.
	TransactionStore interface {
		TransactionsPage(ctx context.Context, q model.TransactionQuery) ([]model.Transaction, error)
	}
	BalanceResolver interface {
		Resolve(ctx context.Context, account model.AccountID, height uint64) (model.Balance, error)
	}
	TokenMetadata interface {
		Metadata(ctx context.Context, contract model.AccountID) (model.FTMetadata, error)
	}
	// Sink receives CSV records one at a time.
	Sink interface {
		Write(ctx context.Context, record []string) error
	}
	Metrics interface {
		ObserveBuild(err error, rows int, started time.Time)
	}
)
