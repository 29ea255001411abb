// Package timespan computes the request time windows shared by the tide,
// weather, and astronomy sources, and handles the local-time stamp formats
// the tide source speaks.
package timespan

import (
	"time"
)

const (
	dayFormat = "20060102"

	// queryFormat is the stamp format for outgoing tide-source requests.
	queryFormat = "20060102 15:04"

	// localFormat is the stamp format the tide source echoes back. Both
	// formats are timezone-naive local time.
	localFormat = "2006-01-02 15:04"
)

// Day is 24 hours. Calendar-day arithmetic in this package is done in fixed
// 24 h steps from a local midnight anchor.
const Day = 24 * time.Hour

// Range is a half-open time window [Begin, End).
type Range struct {
	Begin time.Time
	End   time.Time
}

// Duration returns the length of the window.
func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Begin)
}

// Contains reports whether t falls within the window.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Begin) && t.Before(r.End)
}

// FromNow builds a rolling window relative to the current instant. Offsets
// may be negative for lookback, e.g. FromNow(-6*time.Hour, 24*time.Hour) for
// the 24-hour water level curve.
func FromNow(startOffset, endOffset time.Duration) Range {
	return fromInstant(time.Now(), startOffset, endOffset)
}

func fromInstant(now time.Time, startOffset, endOffset time.Duration) Range {
	return Range{
		Begin: now.Add(startOffset),
		End:   now.Add(endOffset),
	}
}

// FromMidnight builds a day-aligned window starting at local midnight of
// now's calendar day and spanning numDays. All forecast sources are queried
// with the same window so that day index i means the same calendar day in
// each of them, no matter when the user asked.
func FromMidnight(now time.Time, numDays int) Range {
	begin := TrimClock(now)
	return Range{
		Begin: begin,
		End:   begin.Add(time.Duration(numDays) * Day),
	}
}

// TrimClock drops the wall clock component of t, leaving local midnight of
// the same calendar day.
func TrimClock(t time.Time) time.Time {
	h, m, s := t.Clock()
	return t.Add(-1 * (time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())))
}

// SetClock returns t with its wall clock set to the given hour and minute.
func SetClock(t time.Time, hour, minute time.Duration) time.Time {
	return TrimClock(t).Add(hour*time.Hour + minute*time.Minute)
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.Format(dayFormat)
}

// UniqueDay returns a string representation of t that is unique by the day.
// Two separate times on the same calendar day return identical strings.
func UniqueDay(t time.Time) string {
	return t.Format(dayFormat)
}

// FormatQuery renders t as an outgoing request stamp.
func FormatQuery(t time.Time) string {
	return t.Format(queryFormat)
}

// ParseLocal parses a stamp as echoed by the tide source. The stamp carries
// no zone; it is interpreted in local time, matching the time_zone the
// requests ask for.
func ParseLocal(s string) (time.Time, error) {
	return time.ParseInLocation(localFormat, s, time.Local)
}
