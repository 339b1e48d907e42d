package model

import (
	"fmt"
	"math/big"
	"strings"
)

// Balance is the state of an account at a specific height, in yoctoNEAR.
type Balance struct {
	Amount *big.Int
	Locked *big.Int
}

// NewBalance parses decimal yoctoNEAR strings as returned by the node.
func NewBalance(amount, locked string) (Balance, error) {
	a, ok := new(big.Int).SetString(amount, 10)
	if !ok || a.Sign() < 0 {
		return Balance{}, fmt.Errorf("invalid amount %q", amount)
	}
	l := new(big.Int)
	if locked != "" {
		if _, ok := l.SetString(locked, 10); !ok || l.Sign() < 0 {
			return Balance{}, fmt.Errorf("invalid locked amount %q", locked)
		}
	}
	return Balance{Amount: a, Locked: l}, nil
}

// ZeroBalance is used for accounts that did not exist at the requested height.
func ZeroBalance() Balance {
	return Balance{Amount: new(big.Int), Locked: new(big.Int)}
}

// String renders the liquid amount as an exact integer.
func (b Balance) String() string {
	if b.Amount == nil {
		return "0"
	}
	return b.Amount.String()
}

// Encode serializes the balance as "amount:locked".
func (b Balance) Encode() string {
	locked := "0"
	if b.Locked != nil {
		locked = b.Locked.String()
	}
	return b.String() + ":" + locked
}

// DecodeBalance parses the output of Encode.
func DecodeBalance(raw string) (Balance, error) {
	amount, locked, ok := strings.Cut(raw, ":")
	if !ok {
		return Balance{}, fmt.Errorf("malformed balance %q", raw)
	}
	return NewBalance(amount, locked)
}

// Equal compares both components.
func (b Balance) Equal(other Balance) bool {
	return cmpInt(b.Amount, other.Amount) == 0 && cmpInt(b.Locked, other.Locked) == 0
}

func cmpInt(a, b *big.Int) int {
	if a == nil {
		a = new(big.Int)
	}
	if b == nil {
		b = new(big.Int)
	}
	return a.Cmp(b)
}
