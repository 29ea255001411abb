package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: "tidewatch",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"verb", "path", "code"},
	)

	upstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "upstream_latency",
			Subsystem: "tidewatch",
			Help:      "Upstream data source fetch latencies in seconds.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"source"},
	)

	upstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "upstream_errors",
			Subsystem: "tidewatch",
			Help:      "Upstream fetches that errored or timed out.",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		upstreamLatency,
		upstreamErrors,
	)
}

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// ObserveUpstream records one upstream fetch. A fetch that errored (including
// a deadline abort) counts against the source but still records its latency.
func ObserveUpstream(source string, latency time.Duration, err error) {
	upstreamLatency.With(prometheus.Labels{"source": source}).Observe(latency.Seconds())
	if err != nil {
		upstreamErrors.With(prometheus.Labels{"source": source}).Inc()
	}
}

// LatencyHandler instruments next with request latency observations. Panics
// in next are reported as 500 errors and then re-thrown.
func LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := ""
		if r.URL != nil {
			path = r.URL.Path
		}

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			ObserveRequestLatency(verb, path, strconv.Itoa(rec.code), time.Since(t).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}
