// Package handlers wires the data sources to the dashboard's JSON API. For
// each user action (station popup, forecast panel) the needed source calls
// fan out concurrently and join before the transform layer runs; any source
// that fails or times out contributes absent data instead of failing the
// whole response.
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/seaward/tidewatch/pkg/astro"
	"github.com/seaward/tidewatch/pkg/cache"
	"github.com/seaward/tidewatch/pkg/coops"
	"github.com/seaward/tidewatch/pkg/nws"
)

const (
	day = 24 * time.Hour

	forecastDays = 7

	// Status is cached briefly so a popup reopened right away is instant;
	// the forecast is cached for slightly less than one day so daily
	// clients don't see stale data.
	statusTTL   = 5 * time.Minute
	forecastTTL = 23 * time.Hour
)

// Config carries the source clients the handlers fan out to.
type Config struct {
	Coops   *coops.Client
	Weather *nws.Client
	Astro   astro.Source

	// ObservedOnlyCurves permits a 24-hour curve assembled from
	// observations alone when the prediction source yields nothing.
	ObservedOnlyCurves bool
}

// Register attaches the API routes.
func Register(r *mux.Router, cfg Config) {
	r.Handle("/api/v1/stations", makeStationList())
	r.Handle("/api/v1/stations/{id}/status", makeStationStatus(cfg))
	r.Handle("/api/v1/stations/{id}/forecast", makeStationForecast(cfg))
}

func makeStationList() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		type marker struct {
			ID   string  `json:"id"`
			Name string  `json:"name"`
			Lat  float64 `json:"lat"`
			Lon  float64 `json:"lon"`
		}
		markers := make([]marker, 0, len(coops.Stations))
		for _, s := range coops.Stations {
			markers = append(markers, marker{ID: s.ID, Name: s.Name, Lat: s.Lat, Lon: s.Lon})
		}
		writeJSON(w, http.StatusOK, markers)
	})
}

func makeStationStatus(cfg Config) http.Handler {
	timeCache := cache.NewTimed(statusTTL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		station, ok := coops.StationByID(mux.Vars(r)["id"])
		if !ok {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown station"})
			return
		}

		key := fmt.Sprintf("%s %s", r.Method, r.URL)
		if cached, ok := timeCache.Get(key); ok {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		inputs := fetchStatusInputs(r.Context(), cfg, station)
		if inputs.allAbsent() {
			// Every source failed; this popup gets a retryable error panel
			// and the rest of the map stays functional.
			writeJSON(w, http.StatusBadGateway, errorBody{Error: "all data sources unavailable, try again"})
			return
		}

		status := buildStatus(station, inputs, time.Now(), cfg.ObservedOnlyCurves)
		writeCachedJSON(w, timeCache, key, status)
	})
}

func makeStationForecast(cfg Config) http.Handler {
	timeCache := cache.NewTimed(forecastTTL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		station, ok := coops.StationByID(mux.Vars(r)["id"])
		if !ok {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown station"})
			return
		}

		key := fmt.Sprintf("%s %s", r.Method, r.URL)
		if cached, ok := timeCache.Get(key); ok {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		inputs := fetchForecastInputs(r.Context(), cfg, station)
		if inputs.allAbsent() {
			writeJSON(w, http.StatusBadGateway, errorBody{Error: "all data sources unavailable, try again"})
			return
		}

		forecast := buildForecast(station, inputs)
		writeCachedJSON(w, timeCache, key, forecast)
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeCachedJSON duplicates the response onto a buffer for the cache.
func writeCachedJSON(w http.ResponseWriter, c *cache.Timed, key string, body interface{}) {
	var toCache bytes.Buffer
	mw := io.MultiWriter(w, &toCache)

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(mw).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
		return
	}

	// Save asynchronously as the cache may block on its lock.
	go func() {
		c.Set(key, toCache.Bytes())
	}()
}
