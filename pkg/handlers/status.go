package handlers

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seaward/tidewatch/pkg/coops"
	"github.com/seaward/tidewatch/pkg/metrics"
	"github.com/seaward/tidewatch/pkg/tide"
	"github.com/seaward/tidewatch/pkg/timespan"
	"github.com/seaward/tidewatch/pkg/units"
)

// StationStatus is the popup payload for one station. Absent sections are
// null and render as "N/A"; they never take the whole popup down.
type StationStatus struct {
	StationID   string    `json:"stationId"`
	StationName string    `json:"stationName"`
	Updated     time.Time `json:"updated"`

	WaterLevel *float64 `json:"waterLevel"` // feet MLLW
	Trend      string   `json:"trend"`
	Delta      *float64 `json:"delta"` // observed minus predicted, feet

	Phase      tide.PhaseResult `json:"phase"`
	PhaseLabel string           `json:"phaseLabel"`

	WaterTemp *float64           `json:"waterTemp"` // °F
	Wind      *coops.WindReading `json:"wind"`
	Pressure  *float64           `json:"pressure"` // inHg

	Curve *tide.CurveBundle `json:"curve"`
}

// statusInputs is everything the status transform needs, one field per
// upstream call. A nil/empty field means that source degraded.
type statusInputs struct {
	observed    tide.Series
	predicted   tide.Series
	events      []tide.TideEvent
	waterTemp   *coops.Reading
	wind        *coops.WindReading
	airPressure *coops.Reading
}

func (in statusInputs) allAbsent() bool {
	return len(in.observed) == 0 && len(in.predicted) == 0 && len(in.events) == 0 &&
		in.waterTemp == nil && in.wind == nil && in.airPressure == nil
}

// fetchStatusInputs fans out the six source calls for a station popup and
// joins them. Each call gets its own deadline; a timed-out or errored call
// yields absent data for just its field.
func fetchStatusInputs(ctx context.Context, cfg Config, station coops.Station) statusInputs {
	var in statusInputs
	var g errgroup.Group

	g.Go(timed(ctx, "coops", func(cctx context.Context) error {
		var err error
		in.observed, err = cfg.Coops.Readings(cctx, station, coops.ProductWaterLevel,
			timespan.FromNow(-6*time.Hour, 0))
		return err
	}))
	g.Go(timed(ctx, "coops", func(cctx context.Context) error {
		var err error
		in.predicted, err = cfg.Coops.Predictions(cctx, station,
			timespan.FromNow(-6*time.Hour, day), coops.IntervalSixMinute)
		return err
	}))
	g.Go(timed(ctx, "coops", func(cctx context.Context) error {
		var err error
		in.events, err = cfg.Coops.HiloEvents(cctx, station, timespan.FromNow(-day, day))
		return err
	}))
	g.Go(timed(ctx, "coops", func(cctx context.Context) error {
		var err error
		in.waterTemp, err = cfg.Coops.Latest(cctx, station, coops.ProductWaterTemperature)
		return err
	}))
	g.Go(timed(ctx, "coops", func(cctx context.Context) error {
		var err error
		in.wind, err = cfg.Coops.LatestWind(cctx, station)
		return err
	}))
	g.Go(timed(ctx, "coops", func(cctx context.Context) error {
		var err error
		in.airPressure, err = cfg.Coops.Latest(cctx, station, coops.ProductAirPressure)
		return err
	}))

	g.Wait()
	return in
}

// timed wraps one source call with its deadline and metrics. The returned
// closure never reports an error to the group: a failed source degrades to
// absent data rather than cancelling its siblings.
func timed(ctx context.Context, source string, f func(context.Context) error) func() error {
	return func() error {
		cctx, cancel := context.WithTimeout(ctx, coops.FetchTimeout)
		defer cancel()

		t0 := time.Now()
		err := f(cctx)
		metrics.ObserveUpstream(source, time.Since(t0), err)
		if err != nil {
			log.Printf("fetch %s: %v", source, err)
		}
		return nil
	}
}

// buildStatus runs the transform layer over the joined inputs.
func buildStatus(station coops.Station, in statusInputs, now time.Time, observedOnlyCurves bool) StationStatus {
	status := StationStatus{
		StationID:   station.ID,
		StationName: station.Name,
		Updated:     now,
	}

	var current, previous *float64
	if n := len(in.observed); n > 0 {
		current = in.observed[n-1].Value
		if n > 1 {
			previous = in.observed[n-2].Value
		}
	}
	status.WaterLevel = current
	status.Trend = tide.DetermineTrend(current, previous, tide.DefaultTrendThreshold).String()

	// Observed vs predicted at the nearest sample, no interpolation.
	if current != nil && len(in.predicted) > 0 {
		at := in.observed[len(in.observed)-1].Time
		nearest := in.predicted[tide.NearestIndex(in.predicted, at)]
		status.Delta = tide.DetermineDelta(current, nearest.Value)
	}

	phase := tide.ComputePhaseFromHilo(in.events, now)
	status.Phase = phase
	status.PhaseLabel = phase.Label()

	if in.waterTemp != nil {
		status.WaterTemp = in.waterTemp.Value
	}
	status.Wind = in.wind
	if in.airPressure != nil {
		// The source reports millibars.
		status.Pressure = units.MillibarsToInHg(in.airPressure.Value)
	}

	status.Curve = tide.AssembleCurve(in.predicted, in.observed, now, observedOnlyCurves)

	return status
}
