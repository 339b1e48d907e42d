package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tta-backend/internal/clock"
	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"github.com/goodnatureofminers/tta-backend/pkg/safe"
	"github.com/shopspring/decimal"
)

// TransactionsPage returns up to q.Limit successful actions strictly after q.After in chain order:
// block, shard, receipt index in chunk, action index in receipt, outgoing before incoming.
// Actions are matched as outgoing by predecessor, incoming by receiver, and incoming by the
// receiver_id argument of token transfers.
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
WITH actions AS (
	SELECT
		ara.receipt_predecessor_account_id AS account_id,
		'outgoing' AS direction,
		0::bigint AS direction_rank,
		b.block_height::bigint AS block_height,
		b.block_timestamp::bigint AS block_timestamp,
		r.originated_from_transaction_hash AS transaction_hash,
		ara.receipt_id,
		eo.shard_id::bigint AS shard_id,
		r.index_in_chunk::bigint AS index_in_chunk,
		ara.index_in_action_receipt::bigint AS index_in_action_receipt,
		ara.receipt_predecessor_account_id AS predecessor_account_id,
		ara.receipt_receiver_account_id AS receiver_account_id,
		ara.action_kind::text AS action_kind,
		ara.args::text AS args,
		COALESCE(ara.args ->> 'deposit', '0') AS deposit
	FROM action_receipt_actions ara
		JOIN receipts r ON r.receipt_id = ara.receipt_id
		JOIN blocks b ON b.block_hash = r.included_in_block_hash
		JOIN execution_outcomes eo ON eo.receipt_id = ara.receipt_id
	WHERE ara.receipt_predecessor_account_id = ANY($1)
		AND eo.status IN ('SUCCESS_RECEIPT_ID', 'SUCCESS_VALUE')
		AND b.block_height BETWEEN $2 AND $3
		AND b.block_timestamp >= $4 AND b.block_timestamp < $5
		AND b.block_height >= $6
	UNION ALL
	SELECT
		ara.receipt_receiver_account_id,
		'incoming',
		1::bigint,
		b.block_height::bigint,
		b.block_timestamp::bigint,
		r.originated_from_transaction_hash,
		ara.receipt_id,
		eo.shard_id::bigint,
		r.index_in_chunk::bigint,
		ara.index_in_action_receipt::bigint,
		ara.receipt_predecessor_account_id,
		ara.receipt_receiver_account_id,
		ara.action_kind::text,
		ara.args::text,
		COALESCE(ara.args ->> 'deposit', '0')
	FROM action_receipt_actions ara
		JOIN receipts r ON r.receipt_id = ara.receipt_id
		JOIN blocks b ON b.block_hash = r.included_in_block_hash
		JOIN execution_outcomes eo ON eo.receipt_id = ara.receipt_id
	WHERE ara.receipt_receiver_account_id = ANY($1)
		AND eo.status IN ('SUCCESS_RECEIPT_ID', 'SUCCESS_VALUE')
		AND b.block_height BETWEEN $2 AND $3
		AND b.block_timestamp >= $4 AND b.block_timestamp < $5
		AND b.block_height >= $6
	UNION ALL
	SELECT
		ara.args -> 'args_json' ->> 'receiver_id',
		'incoming',
		1::bigint,
		b.block_height::bigint,
		b.block_timestamp::bigint,
		r.originated_from_transaction_hash,
		ara.receipt_id,
		eo.shard_id::bigint,
		r.index_in_chunk::bigint,
		ara.index_in_action_receipt::bigint,
		ara.receipt_predecessor_account_id,
		ara.receipt_receiver_account_id,
		ara.action_kind::text,
		ara.args::text,
		COALESCE(ara.args ->> 'deposit', '0')
	FROM action_receipt_actions ara
		JOIN receipts r ON r.receipt_id = ara.receipt_id
		JOIN blocks b ON b.block_hash = r.included_in_block_hash
		JOIN execution_outcomes eo ON eo.receipt_id = ara.receipt_id
	WHERE ara.action_kind = 'FUNCTION_CALL'
		AND ara.args -> 'args_json' ->> 'receiver_id' = ANY($1)
		AND ara.receipt_receiver_account_id <> ara.args -> 'args_json' ->> 'receiver_id'
		AND eo.status IN ('SUCCESS_RECEIPT_ID', 'SUCCESS_VALUE')
		AND b.block_height BETWEEN $2 AND $3
		AND b.block_timestamp >= $4 AND b.block_timestamp < $5
		AND b.block_height >= $6
)
SELECT
	account_id,
	block_height,
	block_timestamp,
	shard_id,
	index_in_chunk,
	index_in_action_receipt,
	direction_rank,
	transaction_hash,
	receipt_id,
	direction,
	predecessor_account_id,
	receiver_account_id,
	action_kind,
	args,
	deposit
FROM actions
WHERE (block_height, shard_id, index_in_chunk, index_in_action_receipt, direction_rank, account_id)
	> ($6, $7, $8, $9, $10, $11)
ORDER BY block_height, shard_id, index_in_chunk, index_in_action_receipt, direction_rank, account_id
LIMIT $12`

	var args []any
	args, err = pageArgs(q)
	if err != nil {
		return nil, fmt.Errorf("transactions page params: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions page: %w", err)
	}
	defer rows.Close()

	txs := make([]model.Transaction, 0, q.Limit)
	for rows.Next() {
		var tx model.Transaction
		tx, err = scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txs, nil
}

func pageArgs(q model.TransactionQuery) ([]any, error) {
	from, err := safe.Int64(q.Heights.From)
	if err != nil {
		return nil, err
	}
	to, err := safe.Int64(q.Heights.To)
	if err != nil {
		return nil, err
	}
	after, err := safe.Int64(q.After.BlockHeight)
	if err != nil {
		return nil, err
	}

	pos := unpackPosition(q.After.IndexInBlock)

	return []any{
		model.Strings(q.Accounts),
		from,
		to,
		clock.ToUnixNano(q.Times.Start),
		clock.ToUnixNano(q.Times.End),
		after,
		pos.shard,
		pos.receipt,
		pos.action,
		pos.direction,
		string(q.After.AccountID),
		q.Limit,
	}, nil
}

func scanTransaction(rows Rows) (model.Transaction, error) {
	var (
		account, predecessor, receiver string
		direction, kind, deposit       string
		height, timestamp              int64
		pos                            actionPosition
		tx                             model.Transaction
	)
	if err := rows.Scan(
		&account,
		&height,
		&timestamp,
		&pos.shard,
		&pos.receipt,
		&pos.action,
		&pos.direction,
		&tx.TransactionHash,
		&tx.ReceiptID,
		&direction,
		&predecessor,
		&receiver,
		&kind,
		&tx.Args,
		&deposit,
	); err != nil {
		return model.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	var err error
	if tx.BlockHeight, err = safe.Uint64(height); err != nil {
		return model.Transaction{}, fmt.Errorf("transaction block height: %w", err)
	}
	if tx.IndexInBlock, err = pos.pack(); err != nil {
		return model.Transaction{}, fmt.Errorf("transaction index in block: %w", err)
	}
	if tx.Deposit, err = decimal.NewFromString(deposit); err != nil {
		return model.Transaction{}, fmt.Errorf("transaction deposit %q: %w", deposit, err)
	}

	tx.AccountID = model.AccountID(account)
	tx.BlockTimestamp = clock.FromUnixNano(timestamp)
	tx.Direction = model.Direction(direction)
	tx.PredecessorAccountID = model.AccountID(predecessor)
	tx.ReceiverAccountID = model.AccountID(receiver)
	tx.ActionKind = model.ActionKind(kind)

	return tx, nil
}
