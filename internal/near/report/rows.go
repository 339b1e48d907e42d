package report

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"github.com/goodnatureofminers/tta-backend/internal/near/token"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	dateLayout    = "January 02, 2006"
	nearCurrency  = "NEAR"
	nearDecimals  = 24
	balanceColumn = "balance"
)

var transactionColumns = []string{
	"date",
	"account_id",
	"method_name",
	"block_timestamp",
	"from_account",
	"block_height",
	"args",
	"transaction_hash",
	"amount_transferred",
	"currency_transferred",
	"ft_amount_out",
	"ft_currency_out",
	"ft_amount_in",
	"ft_currency_in",
	"to_account",
	"amount_staked",
}

var balancesColumns = []string{"account", "start_balance", "end_balance"}

// TransactionHeader returns the CSV header of the transaction report.
func TransactionHeader(includeBalances bool) []string {
	header := make([]string, 0, len(transactionColumns)+1)
	header = append(header, transactionColumns...)
	if includeBalances {
		header = append(header, balanceColumn)
	}
	return header
}

// BalancesHeader returns the CSV header of the balances report.
func BalancesHeader() []string {
	return append([]string(nil), balancesColumns...)
}

// ErrorMarker renders a failed cell.
func ErrorMarker(err error) string {
	switch {
	case errors.Is(err, model.ErrRemoteUnavailable):
		return "ERROR: remote unavailable"
	case errors.Is(err, model.ErrRateLimited):
		return "ERROR: rate limited"
	case errors.Is(err, model.ErrBlockNotFound):
		return "ERROR: block not found"
	case errors.Is(err, model.ErrStoreUnavailable):
		return "ERROR: store unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "ERROR: canceled"
	default:
		return "ERROR: internal"
	}
}

// balanceCell renders a resolved balance; accounts missing at the height hold 0.
func balanceCell(balance model.Balance, err error) string {
	switch {
	case err == nil:
		return balance.String()
	case errors.Is(err, model.ErrAccountNotFound):
		return "0"
	default:
		return ErrorMarker(err)
	}
}

// storeFailureRow reports a store failure in place of the account's remaining rows.
func storeFailureRow(account model.AccountID, err error, width int) []string {
	row := make([]string, width)
	row[0] = string(account)
	if width > 1 {
		row[1] = "ERROR: store unavailable: " + strings.TrimPrefix(err.Error(), model.ErrStoreUnavailable.Error()+": ")
	}
	return row
}

// rowBuilder turns transactions into report records.
type rowBuilder struct {
	tokens TokenMetadata
	logger *zap.Logger
}

// build returns the record for tx and whether any value moved.
func (b *rowBuilder) build(ctx context.Context, tx model.Transaction) ([]string, bool) {
	outgoing := tx.Direction == model.DirectionOutgoing
	method := token.MethodName(tx)

	transferred := tx.Deposit.Shift(-nearDecimals)
	if outgoing && !transferred.IsZero() {
		transferred = transferred.Neg()
	}

	staked := decimal.Zero
	switch {
	case tx.ActionKind == model.ActionStake:
		if s, err := decimal.NewFromString(gjson.Get(tx.Args, "stake").String()); err == nil {
			staked = s.Shift(-nearDecimals)
		}
	case method == "deposit_and_stake":
		staked = tx.Deposit.Shift(-nearDecimals)
	}

	var ftOut, ftCurrencyOut, ftIn, ftCurrencyIn string
	toAccount := string(tx.ReceiverAccountID)
	movement, moved := token.ParseMovement(tx)
	if moved {
		amount, currency := b.scale(ctx, tx, movement)
		if movement.Incoming {
			ftIn, ftCurrencyIn = amount, currency
		} else {
			ftOut, ftCurrencyOut = amount, currency
		}
		if movement.To != "" {
			toAccount = string(movement.To)
		}
	}

	record := []string{
		tx.BlockTimestamp.UTC().Format(dateLayout),
		string(tx.AccountID),
		method,
		strconv.FormatInt(tx.BlockTimestamp.UnixNano(), 10),
		string(tx.PredecessorAccountID),
		strconv.FormatUint(tx.BlockHeight, 10),
		token.CallArgs(tx),
		tx.TransactionHash,
		transferred.String(),
		nearCurrency,
		ftOut,
		ftCurrencyOut,
		ftIn,
		ftCurrencyIn,
		toAccount,
		staked.String(),
	}

	movesValue := moved || !transferred.IsZero() || !staked.IsZero()
	return record, movesValue
}

// scale converts the movement to whole tokens. Without metadata the raw amount and the
// contract id are reported.
func (b *rowBuilder) scale(ctx context.Context, tx model.Transaction, movement token.Movement) (string, string) {
	meta, err := b.tokens.Metadata(ctx, movement.Contract)
	if err != nil {
		b.logger.Warn("token metadata unavailable",
			zap.String("contract", string(movement.Contract)),
			zap.String("transaction_hash", tx.TransactionHash),
			zap.Error(err),
		)
		return movement.Amount.String(), string(movement.Contract)
	}
	return token.Scale(movement.Amount, meta.Decimals).String(), meta.Symbol
}
