// Package nws fetches forecasts from the National Weather Service API. The
// API serves half-day "periods" (Monday, Monday Night, ...); this package
// folds them into whole calendar days for the forecast cards.
package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/seaward/tidewatch/pkg/timespan"
)

const defaultBaseURL = "https://api.weather.gov"

// Client talks to api.weather.gov. The service requires a User-Agent
// identifying the caller.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

func NewClient() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: "tidewatch/1.0 (github.com/seaward/tidewatch)",
	}
}

// Day is one calendar day's aggregate forecast.
type Day struct {
	Date time.Time `json:"date"`

	High *float64 `json:"high"` // °F, from the daytime period
	Low  *float64 `json:"low"`  // °F, from the night period

	PrecipChance *float64 `json:"precipChance"` // percent
	Short        string   `json:"short"`

	WindSpeed *float64 `json:"windSpeed"` // mph
	WindGust  *float64 `json:"windGust"`  // mph
	WindDir   string   `json:"windDir"`

	// NightOnly marks a day assembled from a night period alone. This
	// happens for the current day when the forecast is fetched in the
	// evening, after the source has rotated the daytime period out. It is a
	// quirk of this source's period shape, not a general day/night rule.
	NightOnly bool `json:"nightOnly"`
}

// Wind is the current wind aggregate from the leading forecast period.
type Wind struct {
	Speed *float64 `json:"speed"` // mph
	Gust  *float64 `json:"gust"`  // mph
	Dir   string   `json:"dir"`
}

// ForecastDays fetches the forecast for a location and folds its periods
// into the calendar days covered by r. Days the source does not cover are
// simply missing from the result; the caller aligns by calendar day.
func (c *Client) ForecastDays(ctx context.Context, lat, lon float64, r timespan.Range) ([]Day, error) {
	periods, err := c.forecastPeriods(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	return foldPeriods(periods, r), nil
}

// CurrentWind reports wind from the leading forecast period.
func (c *Client) CurrentWind(ctx context.Context, lat, lon float64) (*Wind, error) {
	periods, err := c.forecastPeriods(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, nil
	}
	p := periods[0]
	speed, gust := parseWindSpeed(p.WindSpeed), parseWindSpeed(p.WindGust)
	return &Wind{Speed: speed, Gust: gust, Dir: p.WindDirection}, nil
}

func (c *Client) forecastPeriods(ctx context.Context, lat, lon float64) ([]period, error) {
	grid, err := c.gridPoint(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("resolving grid point: %w", err)
	}

	addr := fmt.Sprintf("%s/gridpoints/%s/%d,%d/forecast",
		c.BaseURL, grid.GridID, grid.GridX, grid.GridY)

	var result forecastResponse
	if err := c.getJSON(ctx, addr, &result); err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}
	return result.Properties.Periods, nil
}

// foldPeriods pairs day and night periods into calendar days. A daytime
// period supplies the high, description, and wind; the following night
// supplies the low. A day with only a night period falls back to the night's
// description and wind.
func foldPeriods(periods []period, r timespan.Range) []Day {
	byDay := make(map[string]*Day)
	var order []string

	for _, p := range periods {
		start, err := time.Parse(time.RFC3339, p.StartTime)
		if err != nil {
			continue
		}
		start = start.Local()
		if !r.Contains(start) {
			continue
		}

		key := timespan.UniqueDay(start)
		d, ok := byDay[key]
		if !ok {
			d = &Day{Date: timespan.TrimClock(start), NightOnly: true}
			byDay[key] = d
			order = append(order, key)
		}

		temp := float64(p.Temperature)
		if p.IsDaytime {
			d.High = &temp
			d.Short = p.ShortForecast
			d.WindSpeed = parseWindSpeed(p.WindSpeed)
			d.WindGust = parseWindSpeed(p.WindGust)
			d.WindDir = p.WindDirection
			d.NightOnly = false
		} else {
			d.Low = &temp
			if d.NightOnly {
				d.Short = p.ShortForecast
				d.WindSpeed = parseWindSpeed(p.WindSpeed)
				d.WindGust = parseWindSpeed(p.WindGust)
				d.WindDir = p.WindDirection
			}
		}

		if p.ProbabilityOfPrecipitation.Value != nil {
			pop := float64(*p.ProbabilityOfPrecipitation.Value)
			if d.PrecipChance == nil || pop > *d.PrecipChance {
				d.PrecipChance = &pop
			}
		}
	}

	days := make([]Day, 0, len(order))
	for _, key := range order {
		days = append(days, *byDay[key])
	}
	return days
}

func (c *Client) gridPoint(ctx context.Context, lat, lon float64) (*gridPointInfo, error) {
	addr := fmt.Sprintf("%s/points/%.4f,%.4f", c.BaseURL, lat, lon)

	var result pointResponse
	if err := c.getJSON(ctx, addr, &result); err != nil {
		return nil, err
	}
	return &gridPointInfo{
		GridID: result.Properties.GridID,
		GridX:  result.Properties.GridX,
		GridY:  result.Properties.GridY,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, addr string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type gridPointInfo struct {
	GridID string
	GridX  int
	GridY  int
}

type pointResponse struct {
	Properties struct {
		GridID string `json:"gridId"`
		GridX  int    `json:"gridX"`
		GridY  int    `json:"gridY"`
	} `json:"properties"`
}

type period struct {
	Name                       string `json:"name"`
	StartTime                  string `json:"startTime"`
	EndTime                    string `json:"endTime"`
	IsDaytime                  bool   `json:"isDaytime"`
	Temperature                int    `json:"temperature"`
	TemperatureUnit            string `json:"temperatureUnit"`
	WindSpeed                  string `json:"windSpeed"`
	WindGust                   string `json:"windGust"`
	WindDirection              string `json:"windDirection"`
	ShortForecast              string `json:"shortForecast"`
	ProbabilityOfPrecipitation struct {
		Value *int `json:"value"`
	} `json:"probabilityOfPrecipitation"`
}

type forecastResponse struct {
	Properties struct {
		Periods []period `json:"periods"`
	} `json:"properties"`
}
