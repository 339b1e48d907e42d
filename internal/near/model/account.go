package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	lockupSuffix        = ".lockup.near"
	lockupHashPrefixLen = 40
)

// AccountID identifies a NEAR account.
type AccountID string

// reserved accounts never appear in reports.
var reservedAccounts = map[AccountID]struct{}{
	"near":   {},
	"system": {},
}

// ParseAccountID trims the raw value and rejects empty ids.
func ParseAccountID(raw string) (AccountID, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: empty account id", ErrInvalidInput)
	}
	return AccountID(id), nil
}

// ParseAccounts splits a comma separated list, keeping the first occurrence of duplicates.
func ParseAccounts(raw string) ([]AccountID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: accounts list is empty", ErrInvalidInput)
	}

	parts := strings.Split(raw, ",")
	accounts := make([]AccountID, 0, len(parts))
	seen := make(map[AccountID]struct{}, len(parts))
	for i, part := range parts {
		id, err := ParseAccountID(part)
		if err != nil {
			return nil, fmt.Errorf("account #%d: %w", i+1, err)
		}
		if _, ok := reservedAccounts[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		accounts = append(accounts, id)
	}

	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: accounts list contains only system accounts", ErrInvalidInput)
	}
	return accounts, nil
}

// IsLockup reports whether the account is a lockup contract.
func (a AccountID) IsLockup() bool {
	return strings.HasSuffix(string(a), lockupSuffix)
}

// Lockup returns the lockup contract associated with the account.
func (a AccountID) Lockup() (AccountID, bool) {
	if a == "" || a.IsLockup() {
		return "", false
	}
	sum := sha256.Sum256([]byte(a))
	return AccountID(hex.EncodeToString(sum[:])[:lockupHashPrefixLen] + lockupSuffix), true
}

// WithLockup returns the account followed by its lockup contract, if any.
func (a AccountID) WithLockup() []AccountID {
	if lockup, ok := a.Lockup(); ok {
		return []AccountID{a, lockup}
	}
	return []AccountID{a}
}

func (a AccountID) String() string {
	return string(a)
}

// Strings converts account ids into plain strings for query parameters.
func Strings(accounts []AccountID) []string {
	out := make([]string, len(accounts))
	for i, a := range accounts {
		out[i] = string(a)
	}
	return out
}
