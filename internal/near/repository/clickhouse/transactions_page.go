package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"github.com/shopspring/decimal"
)

// TransactionsPage returns up to q.Limit transactions strictly after q.After in chain order.
func (r *Repository) TransactionsPage(ctx context.Context, q model.TransactionQuery) ([]model.Transaction, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("transactions_page", err, start)
	}()

	if len(q.Accounts) == 0 || q.Limit <= 0 {
		return nil, nil
	}

	const query = `
SELECT
	account_id,
	block_height,
	block_timestamp,
	index_in_block,
	transaction_hash,
	receipt_id,
	direction,
	predecessor_account_id,
	receiver_account_id,
	action_kind,
	args,
	deposit
FROM near_transactions
WHERE account_id IN ?
	AND block_height BETWEEN ? AND ?
	AND block_timestamp >= ? AND block_timestamp < ?
	AND (block_height, index_in_block, account_id) > (?, ?, ?)
ORDER BY block_height ASC, index_in_block ASC, account_id ASC
LIMIT ?`

	rows, err := r.conn.Query(ctx, query,
		model.Strings(q.Accounts),
		q.Heights.From,
		q.Heights.To,
		q.Times.Start,
		q.Times.End,
		q.After.BlockHeight,
		q.After.IndexInBlock,
		string(q.After.AccountID),
		q.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query transactions page: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	txs := make([]model.Transaction, 0, q.Limit)
	for rows.Next() {
		var (
			tx                             model.Transaction
			account, predecessor, receiver string
			direction, kind                string
			deposit                        decimal.Decimal
		)
		if err = rows.Scan(
			&account,
			&tx.BlockHeight,
			&tx.BlockTimestamp,
			&tx.IndexInBlock,
			&tx.TransactionHash,
			&tx.ReceiptID,
			&direction,
			&predecessor,
			&receiver,
			&kind,
			&tx.Args,
			&deposit,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		tx.AccountID = model.AccountID(account)
		tx.BlockTimestamp = tx.BlockTimestamp.UTC()
		tx.Direction = model.Direction(direction)
		tx.PredecessorAccountID = model.AccountID(predecessor)
		tx.ReceiverAccountID = model.AccountID(receiver)
		tx.ActionKind = model.ActionKind(kind)
		tx.Deposit = deposit

		txs = append(txs, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txs, nil
}
