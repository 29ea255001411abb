package tide

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestPartitionByDay(t *testing.T) {
	anchor := time.Date(2026, time.January, 13, 0, 0, 0, 0, time.Local)

	// One point every 6 hours for 7 days.
	var preds Series
	for ts := anchor; ts.Before(anchor.Add(7 * day)); ts = ts.Add(6 * time.Hour) {
		v := float64(ts.Hour()) / 10
		preds = append(preds, TimePoint{Time: ts, Value: &v})
	}

	buckets := PartitionByDay(preds, anchor, 7)

	if len(buckets) != 7 {
		t.Fatalf("got %d buckets, want 7", len(buckets))
	}

	// Exhaustive and disjoint: the union of bucket points equals the input.
	var union Series
	for i, b := range buckets {
		wantStart := anchor.Add(time.Duration(i) * day)
		if !b.Start.Equal(wantStart) {
			t.Errorf("bucket %d starts %v, want %v", i, b.Start, wantStart)
		}
		for _, p := range b.Points {
			if p.Time.Before(b.Start) || !p.Time.Before(b.Start.Add(day)) {
				t.Errorf("bucket %d contains out-of-range point %v", i, p.Time)
			}
		}
		union = append(union, b.Points...)
	}
	if diff := cmp.Diff(preds, union); diff != "" {
		t.Errorf("union of buckets != input (-want,+got):\n%s", diff)
	}
}

func TestPartitionByDayHighLow(t *testing.T) {
	anchor := time.Date(2026, time.January, 13, 0, 0, 0, 0, time.Local)
	preds := Series{
		{Time: anchor.Add(6 * time.Hour), Value: ptr(2.1)},
		{Time: anchor.Add(12 * time.Hour), Value: ptr(-0.3)},
		{Time: anchor.Add(18 * time.Hour), Value: ptr(1.8)},
	}

	buckets := PartitionByDay(preds, anchor, 1)
	b := buckets[0]

	if b.High == nil || *b.High.Value != 2.1 || !b.High.Time.Equal(anchor.Add(6*time.Hour)) {
		t.Errorf("High = %+v, want 2.1 at 06:00", b.High)
	}
	if b.Low == nil || *b.Low.Value != -0.3 || !b.Low.Time.Equal(anchor.Add(12*time.Hour)) {
		t.Errorf("Low = %+v, want -0.3 at 12:00", b.Low)
	}
}

func TestPartitionByDayTiesFirstOccurrence(t *testing.T) {
	anchor := time.Date(2026, time.January, 13, 0, 0, 0, 0, time.Local)
	preds := Series{
		{Time: anchor.Add(3 * time.Hour), Value: ptr(1.5)},
		{Time: anchor.Add(9 * time.Hour), Value: ptr(1.5)},
	}

	b := PartitionByDay(preds, anchor, 1)[0]
	if b.High == nil || !b.High.Time.Equal(anchor.Add(3*time.Hour)) {
		t.Errorf("High tie should keep first occurrence, got %+v", b.High)
	}
	if b.Low == nil || !b.Low.Time.Equal(anchor.Add(3*time.Hour)) {
		t.Errorf("Low tie should keep first occurrence, got %+v", b.Low)
	}
}

func TestPartitionByDayGapsAndNulls(t *testing.T) {
	anchor := time.Date(2026, time.January, 13, 0, 0, 0, 0, time.Local)

	// Day 0 has only a null sample, day 1 has nothing at all, day 2 mixes
	// null and real samples.
	preds := Series{
		{Time: anchor.Add(4 * time.Hour), Value: nil},
		{Time: anchor.Add(2*day + 2*time.Hour), Value: nil},
		{Time: anchor.Add(2*day + 8*time.Hour), Value: ptr(0.7)},
	}

	buckets := PartitionByDay(preds, anchor, 3)

	if b := buckets[0]; b.High != nil || b.Low != nil {
		t.Errorf("null-only bucket should report no extrema, got %+v", b)
	}
	if b := buckets[1]; len(b.Points) != 0 || b.High != nil || b.Low != nil {
		t.Errorf("empty bucket should be empty, got %+v", b)
	}
	if b := buckets[2]; b.High == nil || *b.High.Value != 0.7 {
		t.Errorf("null samples must not hide real extrema, got %+v", b)
	}
}

func TestPartitionByDayIdempotent(t *testing.T) {
	anchor := time.Date(2026, time.January, 13, 0, 0, 0, 0, time.Local)
	preds := Series{
		{Time: anchor.Add(6 * time.Hour), Value: ptr(2.1)},
		{Time: anchor.Add(30 * time.Hour), Value: ptr(0.4)},
	}

	first := PartitionByDay(preds, anchor, 2)
	second := PartitionByDay(preds, anchor, 2)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("partition not idempotent (-first,+second):\n%s", diff)
	}
}

func TestPartitionByDayIgnoresOutOfWindowPoints(t *testing.T) {
	anchor := time.Date(2026, time.January, 13, 0, 0, 0, 0, time.Local)
	preds := Series{
		{Time: anchor.Add(-time.Hour), Value: ptr(9.9)},
		{Time: anchor.Add(time.Hour), Value: ptr(1.0)},
		{Time: anchor.Add(day + time.Hour), Value: ptr(8.8)},
	}

	buckets := PartitionByDay(preds, anchor, 1)
	b := buckets[0]
	if len(b.Points) != 1 || *b.High.Value != 1.0 {
		t.Errorf("out-of-window points leaked into bucket: %+v", b)
	}
}
