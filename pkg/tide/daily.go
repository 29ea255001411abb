package tide

import (
	"time"
)

const day = 24 * time.Hour

// DayBucket is one calendar day's slice of a multi-day prediction series.
// All points satisfy Start <= t < Start+24h. High and Low are the extreme
// samples within the bucket, nil when the bucket has no usable points.
type DayBucket struct {
	Start  time.Time  `json:"start"`
	Points Series     `json:"points"`
	High   *TimePoint `json:"high"`
	Low    *TimePoint `json:"low"`
}

// PartitionByDay splits a flat chronological prediction series into exactly
// numDays midnight-to-midnight buckets anchored at anchorMidnight. Bucket i
// covers [anchor+i days, anchor+(i+1) days); the half-open upper bound keeps
// buckets disjoint and exhaustive. The partition is pure: identical inputs
// always yield identical buckets, with no wall clock dependence beyond the
// anchor.
//
// The caller requests the prediction window to match the anchor, so an empty
// bucket means an upstream gap, reported as nil High/Low rather than an
// error.
func PartitionByDay(predictions Series, anchorMidnight time.Time, numDays int) []DayBucket {
	buckets := make([]DayBucket, numDays)

	// predictions is time-sorted (caller contract), so a single cursor
	// suffices.
	i := 0
	for d := 0; d < numDays; d++ {
		start := anchorMidnight.Add(time.Duration(d) * day)
		end := start.Add(day)
		bucket := DayBucket{Start: start}

		for i < len(predictions) && predictions[i].Time.Before(start) {
			i++
		}
		for ; i < len(predictions) && predictions[i].Time.Before(end); i++ {
			p := predictions[i]
			bucket.Points = append(bucket.Points, p)
			if p.Value == nil {
				// A missing reading can never be an extremum.
				continue
			}
			if bucket.High == nil || *p.Value > *bucket.High.Value {
				high := p
				bucket.High = &high
			}
			if bucket.Low == nil || *p.Value < *bucket.Low.Value {
				low := p
				bucket.Low = &low
			}
		}

		buckets[d] = bucket
	}
	return buckets
}
