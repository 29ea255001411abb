package astro

import (
	"context"
	"time"

	"github.com/keep94/sunrise"

	"github.com/seaward/tidewatch/pkg/timespan"
)

// Local computes sun events and moon phase without any network dependency.
// Moonrise and moonset have no local computation and stay empty; the popup
// shows them as unavailable.
type Local struct{}

var _ Source = (*Local)(nil)

func (Local) Days(ctx context.Context, lat, lon float64, r timespan.Range) ([]Day, error) {
	numDays := int(r.Duration() / timespan.Day)

	var s sunrise.Sunrise
	s.Around(lat, lon, r.Begin)

	// The sunrise package is loose about which day Around lands on; walk it
	// onto the window's first day.
	for !timespan.SameDay(r.Begin, s.Sunrise()) && s.Sunrise().Before(r.Begin) {
		s.AddDays(1)
	}

	days := make([]Day, 0, numDays)
	for i := 0; i < numDays; i++ {
		date := r.Begin.Add(time.Duration(i) * timespan.Day)
		days = append(days, Day{
			Date:      date,
			Sunrise:   s.Sunrise().Format(displayFormat),
			Sunset:    s.Sunset().Format(displayFormat),
			MoonPhase: MoonPhase(date.Add(12 * time.Hour)),
		})
		s.AddDays(1)
	}
	return days, nil
}
