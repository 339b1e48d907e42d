package model

import (
	"fmt"
	"time"
)

// TimeRange is the half-open interval [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange validates Start < End and normalizes both instants to UTC.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("%w: start %s must be before end %s",
			ErrInvalidInput, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeRange{Start: start.UTC(), End: end.UTC()}, nil
}

// Contains reports whether t falls within the range.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// HeightRange is the inclusive block interval [From, To] matching a TimeRange.
type HeightRange struct {
	From uint64
	To   uint64
}

// NewHeightRange enforces From <= To.
func NewHeightRange(from, to uint64) (HeightRange, error) {
	if from > to {
		return HeightRange{}, fmt.Errorf("height range from %d exceeds to %d", from, to)
	}
	return HeightRange{From: from, To: to}, nil
}

// Contains reports whether height lies within the range.
func (r HeightRange) Contains(height uint64) bool {
	return height >= r.From && height <= r.To
}
