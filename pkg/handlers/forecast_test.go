package handlers

import (
	"testing"
	"time"

	"github.com/seaward/tidewatch/pkg/astro"
	"github.com/seaward/tidewatch/pkg/nws"
	"github.com/seaward/tidewatch/pkg/tide"
	"github.com/seaward/tidewatch/pkg/timespan"
)

func TestBuildForecastCards(t *testing.T) {
	anchor := timespan.TrimClock(time.Date(2026, time.January, 13, 15, 30, 0, 0, time.Local))
	window := timespan.Range{Begin: anchor, End: anchor.Add(7 * timespan.Day)}

	var preds tide.Series
	for ts := anchor; ts.Before(window.End); ts = ts.Add(6 * time.Hour) {
		v := 1.0 + float64(ts.Hour())/10
		preds = append(preds, tide.TimePoint{Time: ts, Value: &v})
	}

	in := forecastInputs{
		window:      window,
		predictions: preds,
		weather: []nws.Day{
			{Date: anchor, Short: "Sunny"},
			// Day 1 missing: upstream gap.
			{Date: anchor.Add(2 * timespan.Day), Short: "Rain"},
		},
		astro: []astro.Day{
			{Date: anchor, MoonPhase: "Full Moon"},
		},
	}

	cards := buildForecastCards(in)

	if len(cards) != 7 {
		t.Fatalf("len(cards) = %d, want 7", len(cards))
	}

	if cards[0].Weather == nil || cards[0].Weather.Short != "Sunny" {
		t.Errorf("day 0 weather = %+v, want Sunny", cards[0].Weather)
	}
	if cards[0].Astro == nil || cards[0].Astro.MoonPhase != "Full Moon" {
		t.Errorf("day 0 astro = %+v, want Full Moon", cards[0].Astro)
	}
	if cards[1].Weather != nil {
		t.Errorf("day 1 weather = %+v, want nil for the gap", cards[1].Weather)
	}
	if cards[2].Weather == nil || cards[2].Weather.Short != "Rain" {
		t.Errorf("day 2 weather = %+v, want Rain", cards[2].Weather)
	}

	// Every card has tide extrema: the prediction stream covers all 7 days.
	for i, c := range cards {
		if c.TideHigh == nil || c.TideLow == nil {
			t.Errorf("card %d missing tide extrema: %+v", i, c)
		}
		if !timespan.SameDay(c.Date, anchor.Add(time.Duration(i)*timespan.Day)) {
			t.Errorf("card %d dated %v, want day %d of window", i, c.Date, i)
		}
	}
}

func TestBuildForecastCardsEmptyPredictions(t *testing.T) {
	anchor := timespan.TrimClock(time.Now())
	in := forecastInputs{
		window:  timespan.Range{Begin: anchor, End: anchor.Add(7 * timespan.Day)},
		weather: []nws.Day{{Date: anchor, Short: "Cloudy"}},
	}

	cards := buildForecastCards(in)
	if len(cards) != 7 {
		t.Fatalf("len(cards) = %d, want 7", len(cards))
	}
	// Tide sections degrade to nil; the weather that did arrive still shows.
	if cards[0].TideHigh != nil || cards[0].TideLow != nil {
		t.Errorf("expected nil tide extrema, got %+v", cards[0])
	}
	if cards[0].Weather == nil {
		t.Error("weather should survive a tide outage")
	}
}

func TestForecastInputsAllAbsent(t *testing.T) {
	if !(forecastInputs{}).allAbsent() {
		t.Error("zero inputs should be all absent")
	}
	in := forecastInputs{weather: []nws.Day{{}}}
	if in.allAbsent() {
		t.Error("one present source is not all absent")
	}
}
