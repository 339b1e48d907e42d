package report

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
)

const defaultPageSize = 1000

// TransactionReader streams the transactions of an account and its lockup in chain order.
type TransactionReader struct {
	store    TransactionStore
	pageSize int
}

// NewTransactionReader creates a reader fetching pageSize rows per store query.
func NewTransactionReader(store TransactionStore, pageSize int) (*TransactionReader, error) {
	if store == nil {
		return nil, errors.New("transaction store is required")
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &TransactionReader{store: store, pageSize: pageSize}, nil
}

// Stream yields transactions ordered by (height, index in block, account).
// A store failure is yielded once, wrapped in model.ErrStoreUnavailable, and ends the sequence.
func (r *TransactionReader) Stream(ctx context.Context, account model.AccountID, heights model.HeightRange, times model.TimeRange) iter.Seq2[model.Transaction, error] {
	return func(yield func(model.Transaction, error) bool) {
		q := model.TransactionQuery{
			Accounts: account.WithLockup(),
			Heights:  heights,
			Times:    times,
			After:    model.TransactionCursor{BlockHeight: heights.From},
			Limit:    r.pageSize,
		}

		for {
			if err := ctx.Err(); err != nil {
				yield(model.Transaction{}, err)
				return
			}

			page, err := r.store.TransactionsPage(ctx, q)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					yield(model.Transaction{}, ctxErr)
					return
				}
				yield(model.Transaction{}, fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err))
				return
			}

			for _, tx := range page {
				if !yield(tx, nil) {
					return
				}
			}
			if len(page) < r.pageSize {
				return
			}
			q.After = page[len(page)-1].Cursor()
		}
	}
}
