// Package coops fetches water level observations, predictions, and hilo
// extrema from the NOAA CO-OPS data API. Responses are normalized into the
// core tide types; malformed values degrade to nil samples rather than
// failing the whole response.
package coops

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/seaward/tidewatch/pkg/tide"
	"github.com/seaward/tidewatch/pkg/timespan"
	"github.com/seaward/tidewatch/pkg/units"
)

const (
	defaultBaseURL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"

	// FetchTimeout bounds every individual source call. A call that blows
	// the deadline is aborted and its data treated as absent; there are no
	// retries.
	FetchTimeout = 10 * time.Second
)

// Data product names accepted by Latest.
const (
	ProductWaterLevel       = "water_level"
	ProductWaterTemperature = "water_temperature"
	ProductAirPressure      = "air_pressure"
)

// IntervalSixMinute and IntervalHourly select prediction sample spacing.
const (
	IntervalSixMinute = "6"
	IntervalHourly    = "h"
)

// Client talks to the CO-OPS data getter.
type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	Application string
}

func NewClient() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: FetchTimeout,
		},
		Application: "tidewatch",
	}
}

// Readings fetches an observed data product over a window as a Series.
// Sensor dropouts appear as nil-valued points.
func (c *Client) Readings(ctx context.Context, station Station, product string, r timespan.Range) (tide.Series, error) {
	var result dataResult
	if err := c.fetch(ctx, c.values(station, r, product, nil), &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, fmt.Errorf("source error for %s: %s", product, result.Error.Message)
	}

	series := make(tide.Series, 0, len(result.Data))
	for _, s := range result.Data {
		series = append(series, tide.TimePoint{Time: s.Time.T(), Value: s.value()})
	}
	return series, nil
}

// Latest fetches the most recent observation of a data product, looking back
// one hour. Returns nil with no error when the window is empty.
func (c *Client) Latest(ctx context.Context, station Station, product string) (*Reading, error) {
	series, err := c.Readings(ctx, station, product, timespan.FromNow(-time.Hour, 0))
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, nil
	}
	last := series[len(series)-1]
	return &Reading{Time: last.Time, Value: last.Value}, nil
}

// Predictions fetches the modeled water level curve for a window at the
// given sampling interval.
func (c *Client) Predictions(ctx context.Context, station Station, r timespan.Range, interval string) (tide.Series, error) {
	var result predictionsResult
	vals := c.values(station, r, "predictions", map[string]string{"interval": interval})
	if err := c.fetch(ctx, vals, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, fmt.Errorf("source error for predictions: %s", result.Error.Message)
	}

	series := make(tide.Series, 0, len(result.Predictions))
	for _, s := range result.Predictions {
		series = append(series, tide.TimePoint{Time: s.Time.T(), Value: s.value()})
	}
	return series, nil
}

// HiloEvents fetches the predicted high/low extrema for a window. The
// extrema are ground truth for phase computation and are never recomputed
// from the curve. Records with an unparseable level or type are skipped.
func (c *Client) HiloEvents(ctx context.Context, station Station, r timespan.Range) ([]tide.TideEvent, error) {
	var result hiloResult
	vals := c.values(station, r, "predictions", map[string]string{"interval": "hilo"})
	if err := c.fetch(ctx, vals, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, fmt.Errorf("source error for hilo: %s", result.Error.Message)
	}

	events := make([]tide.TideEvent, 0, len(result.Predictions))
	for _, p := range result.Predictions {
		level := units.ParseFloat(p.Value)
		if level == nil {
			continue
		}
		var kind tide.EventKind
		switch p.Type {
		case "H":
			kind = tide.High
		case "L":
			kind = tide.Low
		default:
			continue
		}
		events = append(events, tide.TideEvent{Time: p.Time.T(), Level: *level, Kind: kind})
	}
	return events, nil
}

// LatestWind fetches the most recent wind observation, converted from knots
// to mph. Returns nil with no error when the window is empty.
func (c *Client) LatestWind(ctx context.Context, station Station) (*WindReading, error) {
	var result windResult
	vals := c.values(station, timespan.FromNow(-time.Hour, 0), "wind", nil)
	if err := c.fetch(ctx, vals, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, fmt.Errorf("source error for wind: %s", result.Error.Message)
	}
	if len(result.Data) == 0 {
		return nil, nil
	}

	last := result.Data[len(result.Data)-1]
	return &WindReading{
		Time:     last.Time.T(),
		Speed:    units.KnotsToMPH(units.ParseFloat(last.Speed)),
		Gust:     units.KnotsToMPH(units.ParseFloat(last.Gust)),
		Degrees:  units.ParseFloat(last.Direction),
		Cardinal: last.Cardinal,
	}, nil
}

func (c *Client) values(station Station, r timespan.Range, product string, extra map[string]string) url.Values {
	vals := make(url.Values)
	vals.Add("begin_date", timespan.FormatQuery(r.Begin))
	vals.Add("end_date", timespan.FormatQuery(r.End))
	vals.Add("station", station.ID)
	vals.Add("product", product)
	vals.Add("datum", "MLLW")
	vals.Add("time_zone", "lst_ldt")
	vals.Add("units", "english")
	vals.Add("format", "json")
	vals.Add("application", c.Application)
	for k, v := range extra {
		vals.Add(k, v)
	}
	return vals
}

func (c *Client) fetch(ctx context.Context, vals url.Values, out interface{}) error {
	addr, err := url.Parse(c.BaseURL)
	if err != nil {
		return err
	}
	addr.RawQuery = vals.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", vals.Get("product"), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("source returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", vals.Get("product"), err)
	}
	return nil
}
