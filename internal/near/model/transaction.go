package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells whether an action moved value into or out of the account.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// ActionKind mirrors the NEAR action kinds stored by the indexer.
type ActionKind string

const (
	ActionTransfer       ActionKind = "TRANSFER"
	ActionFunctionCall   ActionKind = "FUNCTION_CALL"
	ActionStake          ActionKind = "STAKE"
	ActionCreateAccount  ActionKind = "CREATE_ACCOUNT"
	ActionDeleteAccount  ActionKind = "DELETE_ACCOUNT"
	ActionAddKey         ActionKind = "ADD_KEY"
	ActionDeleteKey      ActionKind = "DELETE_KEY"
	ActionDeployContract ActionKind = "DEPLOY_CONTRACT"
)

// Block is a single entry of the timestamp to height index.
type Block struct {
	Height    uint64
	Timestamp time.Time
}

// Transaction is one action affecting an account, as persisted by the indexer.
type Transaction struct {
	AccountID            AccountID
	BlockHeight          uint64
	BlockTimestamp       time.Time
	IndexInBlock         uint32
	TransactionHash      string
	ReceiptID            string
	Direction            Direction
	PredecessorAccountID AccountID
	ReceiverAccountID    AccountID
	ActionKind           ActionKind
	// Args holds the raw action arguments JSON.
	Args    string
	Deposit decimal.Decimal
}

// Cursor returns the keyset position right after this transaction.
func (t Transaction) Cursor() TransactionCursor {
	return TransactionCursor{
		BlockHeight:  t.BlockHeight,
		IndexInBlock: t.IndexInBlock,
		AccountID:    t.AccountID,
	}
}

// TransactionCursor is the last seen (height, intra-block index, account) tuple.
type TransactionCursor struct {
	BlockHeight  uint64
	IndexInBlock uint32
	AccountID    AccountID
}

// TransactionQuery selects a page of transactions in chain order.
type TransactionQuery struct {
	Accounts []AccountID
	Heights  HeightRange
	Times    TimeRange
	After    TransactionCursor
	Limit    int
}
