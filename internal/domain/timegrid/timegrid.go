// Package timegrid holds the interval arithmetic shared by the booking and
// slot-generation paths. The overlap predicate lives here and only here.
package timegrid

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds the interval [start, start+duration).
func NewInterval(start time.Time, duration time.Duration) Interval {
	return Interval{Start: start, End: start.Add(duration)}
}

// Duration returns the interval length.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two half-open intervals share any instant.
// [s1, e1) overlaps [s2, e2) iff s1 < e2 && s2 < e1, so intervals that
// only touch at an endpoint do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// OverlapsAny reports whether iv overlaps at least one of the busy intervals.
func OverlapsAny(iv Interval, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(iv, b) {
			return true
		}
	}
	return false
}

// Walk returns candidate start times inside [windowStart, windowEnd), stepping
// forward by step while a slot of length duration still fits entirely in the
// window. A window shorter than one duration yields no candidates.
func Walk(windowStart, windowEnd time.Time, duration, step time.Duration) []time.Time {
	if duration <= 0 || step <= 0 {
		return nil
	}
	if !windowEnd.After(windowStart) {
		return nil
	}

	var starts []time.Time
	for t := windowStart; !t.Add(duration).After(windowEnd); t = t.Add(step) {
		starts = append(starts, t)
	}
	return starts
}
