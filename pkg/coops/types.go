package coops

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/seaward/tidewatch/pkg/timespan"
	"github.com/seaward/tidewatch/pkg/units"
)

// Station is a CO-OPS monitoring station.
type Station struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64
}

// Stations is the built-in station catalog the map markers are drawn from.
var Stations = []Station{
	{ID: "9413745", Name: "Santa Cruz, CA", Lat: 36.9581, Lon: -122.0172},
	{ID: "9414290", Name: "San Francisco, CA", Lat: 37.8063, Lon: -122.4659},
	{ID: "9410230", Name: "La Jolla, CA", Lat: 32.8669, Lon: -117.2571},
	{ID: "9447130", Name: "Seattle, WA", Lat: 47.6026, Lon: -122.3393},
	{ID: "8443970", Name: "Boston, MA", Lat: 42.3539, Lon: -71.0503},
}

// StationByID looks a station up in the catalog.
func StationByID(id string) (Station, bool) {
	for _, s := range Stations {
		if s.ID == id {
			return s, true
		}
	}
	return Station{}, false
}

// Time is a local-time stamp as the source encodes it.
type Time time.Time

var _ json.Unmarshaler = &Time{}

func (t *Time) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("sample time %q not string: %w", buf, err)
	}
	parsed, err := timespan.ParseLocal(s)
	if err != nil {
		return fmt.Errorf("sample time %q: %w", s, err)
	}
	*t = Time(parsed)
	return nil
}

// T casts away the wire type.
func (t Time) T() time.Time {
	return time.Time(t)
}

// sample is one observed or predicted water level record. The value is kept
// as the raw string; the source sends empty or non-numeric values for sensor
// dropouts and those must become nil samples, not decode errors.
type sample struct {
	Time  Time   `json:"t"`
	Value string `json:"v"`
}

func (s sample) value() *float64 {
	return units.ParseFloat(s.Value)
}

// hiloPrediction is one extremum record from the hilo prediction product.
type hiloPrediction struct {
	Time  Time   `json:"t"`
	Value string `json:"v"`
	Type  string `json:"type"`
}

// windRecord is one record from the wind data product. Speeds are knots when
// queried with english units.
type windRecord struct {
	Time      Time   `json:"t"`
	Speed     string `json:"s"`
	Gust      string `json:"g"`
	Direction string `json:"d"`
	Cardinal  string `json:"dr"`
}

// WindReading is the latest wind observation at a station, converted to mph.
type WindReading struct {
	Time     time.Time `json:"time"`
	Speed    *float64  `json:"speed"`
	Gust     *float64  `json:"gust"`
	Degrees  *float64  `json:"degrees"`
	Cardinal string    `json:"cardinal"`
}

// Reading is the latest scalar observation for one data product.
type Reading struct {
	Time  time.Time `json:"time"`
	Value *float64  `json:"value"`
}

type dataResult struct {
	Data  []sample   `json:"data"`
	Error *wireError `json:"error"`
}

type predictionsResult struct {
	Predictions []sample   `json:"predictions"`
	Error       *wireError `json:"error"`
}

type hiloResult struct {
	Predictions []hiloPrediction `json:"predictions"`
	Error       *wireError       `json:"error"`
}

type windResult struct {
	Data  []windRecord `json:"data"`
	Error *wireError   `json:"error"`
}

// wireError is the source's in-band error envelope, returned with a 200 for
// conditions like "no data was found".
type wireError struct {
	Message string `json:"message"`
}
