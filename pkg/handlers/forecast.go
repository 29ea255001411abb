package handlers

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seaward/tidewatch/pkg/astro"
	"github.com/seaward/tidewatch/pkg/coops"
	"github.com/seaward/tidewatch/pkg/nws"
	"github.com/seaward/tidewatch/pkg/tide"
	"github.com/seaward/tidewatch/pkg/timespan"
)

// Forecast is the 7-day panel payload: one card per calendar day, all three
// sources aligned to the same midnight-anchored window.
type Forecast struct {
	StationID   string         `json:"stationId"`
	StationName string         `json:"stationName"`
	Begin       time.Time      `json:"begin"`
	Days        []ForecastCard `json:"days"`
}

// ForecastCard is one calendar day. Nil sections mean that source had
// nothing for the day and render as "N/A".
type ForecastCard struct {
	Date    time.Time `json:"date"`
	Weekday string    `json:"weekday"`

	TideHigh *tide.TimePoint `json:"tideHigh"`
	TideLow  *tide.TimePoint `json:"tideLow"`

	Weather *nws.Day   `json:"weather"`
	Astro   *astro.Day `json:"astro"`
}

type forecastInputs struct {
	window      timespan.Range
	predictions tide.Series
	weather     []nws.Day
	astro       []astro.Day
}

func (in forecastInputs) allAbsent() bool {
	return len(in.predictions) == 0 && len(in.weather) == 0 && len(in.astro) == 0
}

// fetchForecastInputs fans out the three forecast sources over one shared
// midnight-anchored window, so day index i is the same calendar day in all
// of them no matter when the user clicked.
func fetchForecastInputs(ctx context.Context, cfg Config, station coops.Station) forecastInputs {
	in := forecastInputs{
		window: timespan.FromMidnight(time.Now(), forecastDays),
	}
	var g errgroup.Group

	g.Go(timed(ctx, "coops", func(cctx context.Context) error {
		var err error
		in.predictions, err = cfg.Coops.Predictions(cctx, station, in.window, coops.IntervalHourly)
		return err
	}))
	g.Go(timed(ctx, "nws", func(cctx context.Context) error {
		var err error
		in.weather, err = cfg.Weather.ForecastDays(cctx, station.Lat, station.Lon, in.window)
		return err
	}))
	g.Go(timed(ctx, "astro", func(cctx context.Context) error {
		var err error
		in.astro, err = cfg.Astro.Days(cctx, station.Lat, station.Lon, in.window)
		return err
	}))

	g.Wait()
	return in
}

func buildForecast(station coops.Station, in forecastInputs) Forecast {
	return Forecast{
		StationID:   station.ID,
		StationName: station.Name,
		Begin:       in.window.Begin,
		Days:        buildForecastCards(in),
	}
}

// buildForecastCards partitions the prediction stream into calendar-day
// buckets and attaches the matching weather and astronomy days by calendar
// date.
func buildForecastCards(in forecastInputs) []ForecastCard {
	buckets := tide.PartitionByDay(in.predictions, in.window.Begin, forecastDays)

	weatherByDay := make(map[string]*nws.Day, len(in.weather))
	for i := range in.weather {
		weatherByDay[timespan.UniqueDay(in.weather[i].Date)] = &in.weather[i]
	}
	astroByDay := make(map[string]*astro.Day, len(in.astro))
	for i := range in.astro {
		astroByDay[timespan.UniqueDay(in.astro[i].Date)] = &in.astro[i]
	}

	cards := make([]ForecastCard, forecastDays)
	for i, bucket := range buckets {
		key := timespan.UniqueDay(bucket.Start)
		cards[i] = ForecastCard{
			Date:     bucket.Start,
			Weekday:  bucket.Start.Weekday().String(),
			TideHigh: bucket.High,
			TideLow:  bucket.Low,
			Weather:  weatherByDay[key],
			Astro:    astroByDay[key],
		}
	}
	return cards
}
