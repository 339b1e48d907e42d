package token

import (
	"encoding/base64"
	"strings"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const bridgeFactorySuffix = ".factory.bridge.near"

// Movement is a fungible token transfer recognized in a function call.
// Amount is in the token's smallest units.
type Movement struct {
	Contract model.AccountID
	Amount   decimal.Decimal
	Incoming bool
	To       model.AccountID
}

// MethodName is the called method for function calls and the action kind otherwise.
func MethodName(tx model.Transaction) string {
	if tx.ActionKind != model.ActionFunctionCall {
		return string(tx.ActionKind)
	}
	return gjson.Get(tx.Args, "method_name").String()
}

// CallArgs returns the function call arguments as text, "{}" when there are none.
func CallArgs(tx model.Transaction) string {
	if j := gjson.Get(tx.Args, "args_json"); j.Exists() && j.Type != gjson.Null {
		return j.Raw
	}
	if b := gjson.Get(tx.Args, "args_base64"); b.Exists() {
		decoded, err := base64.StdEncoding.DecodeString(b.String())
		if err != nil {
			return ""
		}
		return string(decoded)
	}
	return "{}"
}

// ParseMovement recognizes ft_transfer, ft_transfer_call, bridge withdraw,
// near_deposit and near_withdraw calls.
func ParseMovement(tx model.Transaction) (Movement, bool) {
	if tx.ActionKind != model.ActionFunctionCall {
		return Movement{}, false
	}

	args := CallArgs(tx)
	incoming := tx.Direction == model.DirectionIncoming
	contract := tx.ReceiverAccountID

	switch MethodName(tx) {
	case "ft_transfer", "ft_transfer_call":
		amount, ok := argAmount(args)
		if !ok {
			return Movement{}, false
		}
		return Movement{
			Contract: contract,
			Amount:   amount,
			Incoming: incoming,
			To:       model.AccountID(gjson.Get(args, "receiver_id").String()),
		}, true
	case "withdraw":
		if !strings.HasSuffix(string(contract), bridgeFactorySuffix) {
			return Movement{}, false
		}
		amount, ok := argAmount(args)
		if !ok {
			return Movement{}, false
		}
		return Movement{Contract: contract, Amount: amount, To: tx.PredecessorAccountID}, true
	case "near_deposit":
		return Movement{
			Contract: contract,
			Amount:   tx.Deposit,
			Incoming: true,
			To:       tx.PredecessorAccountID,
		}, true
	case "near_withdraw":
		amount, ok := argAmount(args)
		if !ok {
			return Movement{}, false
		}
		return Movement{Contract: contract, Amount: amount, To: tx.PredecessorAccountID}, true
	default:
		return Movement{}, false
	}
}

// Scale converts smallest units into whole tokens.
func Scale(amount decimal.Decimal, decimals int32) decimal.Decimal {
	return amount.Shift(-decimals)
}

func argAmount(args string) (decimal.Decimal, bool) {
	raw := gjson.Get(args, "amount")
	if !raw.Exists() {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(raw.String())
	if err != nil || amount.IsNegative() {
		return decimal.Decimal{}, false
	}
	return amount, true
}
