// Package astro supplies per-day sunrise/sunset and moonrise/moonset times
// plus a moon phase descriptor. The remote astronomy service is the source
// of truth; a local computation covers sun events and moon phase when the
// remote source yields nothing. There is deliberately one combined path
// rather than two parallel ones.
package astro

import (
	"context"
	"log"
	"time"

	"github.com/seaward/tidewatch/pkg/timespan"
)

// displayFormat is the time-of-day format the popup cards show.
const displayFormat = "3:04 PM"

// Day is one calendar day's astronomy card. The time fields are display
// strings; an empty string means unavailable.
type Day struct {
	Date      time.Time `json:"date"`
	Sunrise   string    `json:"sunrise"`
	Sunset    string    `json:"sunset"`
	Moonrise  string    `json:"moonrise"`
	Moonset   string    `json:"moonset"`
	MoonPhase string    `json:"moonPhase"`
}

// Source produces astronomy days for a location over a window.
type Source interface {
	Days(ctx context.Context, lat, lon float64, r timespan.Range) ([]Day, error)
}

// Fallback consults Remote first and falls back to Local when the remote
// source errors or comes back empty.
type Fallback struct {
	Remote Source
	Local  Source
}

var _ Source = (*Fallback)(nil)

func (f *Fallback) Days(ctx context.Context, lat, lon float64, r timespan.Range) ([]Day, error) {
	if f.Remote != nil {
		days, err := f.Remote.Days(ctx, lat, lon, r)
		if err == nil && len(days) > 0 {
			return days, nil
		}
		if err != nil {
			log.Printf("astro: remote source failed, using local: %v", err)
		}
	}
	if f.Local == nil {
		return nil, nil
	}
	return f.Local.Days(ctx, lat, lon, r)
}
