package model

import "errors"

var (
	// ErrInvalidInput marks request parameters rejected before any work starts.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRemoteUnavailable is returned once the node could not answer after all retries.
	ErrRemoteUnavailable = errors.New("remote unavailable")
	// ErrRateLimited is returned when admission to the node would wait longer than allowed.
	ErrRateLimited = errors.New("rate limited")
	// ErrAccountNotFound means the account did not exist at the requested height.
	ErrAccountNotFound = errors.New("account not found at height")
	// ErrBlockNotFound means the node has no data for the requested height.
	ErrBlockNotFound = errors.New("block not found")
	// ErrStoreUnavailable wraps failures of the transaction store.
	ErrStoreUnavailable = errors.New("store unavailable")
)
