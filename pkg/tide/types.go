// Package tide interprets and reconciles already-fetched water level data:
// trend and tide-phase computation, merging observed and predicted series
// into chart-ready bundles, and partitioning multi-day prediction streams
// into calendar-day buckets.
//
// Every function in this package is total. Absent data is represented by nil
// values that propagate through to the caller; nothing here panics or errors
// on missing input.
package tide

import (
	"fmt"
	"time"
)

// TimePoint is a single observation or prediction sample. Value is nil for a
// missing reading; a nil value must never silently become 0.
type TimePoint struct {
	Time  time.Time `json:"time"`
	Value *float64  `json:"value"`
}

// Series is an ordered sequence of samples, non-decreasing in time. Callers
// of AssembleCurve and PartitionByDay are responsible for supplying sorted
// series; only ComputePhaseFromHilo sorts at its own boundary.
type Series []TimePoint

// EventKind says whether an extremum is a high or low tide.
type EventKind uint

const (
	High EventKind = iota
	Low
)

func (k EventKind) String() string {
	switch k {
	case High:
		return "high"
	case Low:
		return "low"
	default:
		return "invalid"
	}
}

// TideEvent is a local extremum in the predicted tide curve. Extrema come
// only from the prediction source and are treated as ground truth, never
// recomputed locally.
type TideEvent struct {
	Time  time.Time `json:"time"`
	Level float64   `json:"level"`
	Kind  EventKind `json:"kind"`
}

func (e TideEvent) String() string {
	return fmt.Sprintf("%s %s %.2fft",
		e.Time.Format(time.RFC822), e.Kind, e.Level)
}

// NearestIndex finds the index of the sample closest to t by absolute time
// difference. A linear scan is fine for the series this system sees, around
// 200-300 points at 6-minute granularity. Returns -1 for an empty series.
func NearestIndex(s Series, t time.Time) int {
	best := -1
	var bestDiff time.Duration
	for i := range s {
		diff := s[i].Time.Sub(t)
		if diff < 0 {
			diff = -diff
		}
		if best == -1 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}
