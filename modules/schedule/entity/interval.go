package entity

import "time"

// Interval is a half-open time range [Start, End). Times are naive
// local timestamps; no timezone conversion happens in the scheduler.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsValid reports whether the range is non-degenerate (End strictly
// after Start).
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// Overlaps is the single overlap predicate for the whole scheduler:
// a.Start < b.End && b.Start < a.End. Touching endpoints do not
// overlap, so back-to-back reservations are fine.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration of the interval.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
