package model

import "fmt"

// Interval is a labeled, half-open [Start,End) window on a day, expressed as
// minutes since midnight. Intervals forming one run's grid share a uniform
// width (commonly 15 minutes) per spec.md §3.
type Interval struct {
	Label string // e.g. "08:00-08:15"
	Start int    // minutes since midnight
	End   int    // minutes since midnight, End > Start
}

// Hours returns the interval's width in hours.
func (iv Interval) Hours() float64 {
	return float64(iv.End-iv.Start) / 60.0
}

// Overlaps reports whether two intervals share any half-open time, the
// definition spec.md §4.6 requires for bulk_apply conflict detection (true
// interval overlap, not identical-label matching — see SPEC_FULL.md §E).
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// NewInterval builds an Interval with a generated "HH:MM-HH:MM" label.
func NewInterval(startMin, endMin int) Interval {
	return Interval{
		Label: fmt.Sprintf("%02d:%02d-%02d:%02d", startMin/60, startMin%60, endMin/60, endMin%60),
		Start: startMin,
		End:   endMin,
	}
}
