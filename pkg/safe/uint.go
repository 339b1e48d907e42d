// Package safe provides overflow checked integer conversions used at storage boundaries.
package safe

import (
	"fmt"
	"math"
)

// Integer lists the integer kinds accepted by the converters.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// Uint32 converts v to uint32, failing on negatives and overflow.
func Uint32[T Integer](v T) (uint32, error) {
	if !fits(v, 0, math.MaxUint32) {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}

// Uint64 converts v to uint64, failing on negatives.
func Uint64[T Integer](v T) (uint64, error) {
	if isNegative(v) {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return uint64(v), nil
}

// Int64 converts v to int64, failing when an unsigned value exceeds math.MaxInt64.
func Int64[T Integer](v T) (int64, error) {
	if !isNegative(v) && uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}

func isNegative[T Integer](v T) bool {
	return v < 0
}

func fits[T Integer](v T, lower int64, upper uint64) bool {
	if isNegative(v) {
		return int64(v) >= lower
	}
	return uint64(v) <= upper
}
