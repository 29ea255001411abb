package astro

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/seaward/tidewatch/pkg/timespan"
)

// Remote queries an astronomy HTTP API for one day at a time. The API takes
// a lat/long/date query and answers with 24-hour time-of-day strings plus a
// moon phase descriptor.
type Remote struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

var _ Source = (*Remote)(nil)

func NewRemote(baseURL, apiKey string) *Remote {
	return &Remote{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type remoteDay struct {
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
	Moonrise  string `json:"moonrise"`
	Moonset   string `json:"moonset"`
	MoonPhase string `json:"moon_phase"`
}

func (c *Remote) Days(ctx context.Context, lat, lon float64, r timespan.Range) ([]Day, error) {
	numDays := int(r.Duration() / timespan.Day)
	days := make([]Day, 0, numDays)

	for i := 0; i < numDays; i++ {
		date := r.Begin.Add(time.Duration(i) * timespan.Day)
		d, err := c.day(ctx, lat, lon, date)
		if err != nil {
			return nil, fmt.Errorf("astronomy for %s: %w", timespan.UniqueDay(date), err)
		}
		days = append(days, d)
	}
	return days, nil
}

func (c *Remote) day(ctx context.Context, lat, lon float64, date time.Time) (Day, error) {
	addr, err := url.Parse(c.BaseURL)
	if err != nil {
		return Day{}, err
	}
	vals := make(url.Values)
	vals.Add("apiKey", c.APIKey)
	vals.Add("lat", fmt.Sprintf("%.4f", lat))
	vals.Add("long", fmt.Sprintf("%.4f", lon))
	vals.Add("date", date.Format("2006-01-02"))
	addr.RawQuery = vals.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return Day{}, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Day{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Day{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	var raw remoteDay
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Day{}, err
	}

	return Day{
		Date:      timespan.TrimClock(date),
		Sunrise:   toDisplayClock(raw.Sunrise),
		Sunset:    toDisplayClock(raw.Sunset),
		Moonrise:  toDisplayClock(raw.Moonrise),
		Moonset:   toDisplayClock(raw.Moonset),
		MoonPhase: prettyPhase(raw.MoonPhase),
	}, nil
}

// toDisplayClock converts the source's 24-hour "15:04" strings to display
// form. Sentinels like "-:-" (no moonrise that day) become empty.
func toDisplayClock(s string) string {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return ""
	}
	return parsed.Format(displayFormat)
}

// prettyPhase converts descriptors like "WAXING_GIBBOUS" to "Waxing
// Gibbous".
func prettyPhase(s string) string {
	words := strings.Fields(strings.ReplaceAll(strings.ToLower(s), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
