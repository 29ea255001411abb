package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seaward/tidewatch/pkg/astro"
	"github.com/seaward/tidewatch/pkg/coops"
	"github.com/seaward/tidewatch/pkg/handlers"
	"github.com/seaward/tidewatch/pkg/metrics"
	"github.com/seaward/tidewatch/pkg/nws"
)

type Config struct {
	Port   string `default:"8080"`
	Prefix string `default:"/"`

	// AstroURL and AstroKey point at the remote astronomy API. When unset,
	// astronomy comes from local computation alone.
	AstroURL string `envconfig:"ASTRO_URL"`
	AstroKey string `envconfig:"ASTRO_KEY"`

	// ObservedOnlyCurves permits a tide curve built from observations when
	// the prediction source has nothing for a station.
	ObservedOnlyCurves bool `envconfig:"OBSERVED_ONLY_CURVES"`
}

func main() {
	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal(err.Error())
	}

	astroSource := &astro.Fallback{Local: astro.Local{}}
	if env.AstroURL != "" {
		astroSource.Remote = astro.NewRemote(env.AstroURL, env.AstroKey)
	}

	r := mux.NewRouter().StrictSlash(true)
	s := r.PathPrefix(env.Prefix).Subrouter()

	handlers.Register(s, handlers.Config{
		Coops:              coops.NewClient(),
		Weather:            nws.NewClient(),
		Astro:              astroSource,
		ObservedOnlyCurves: env.ObservedOnlyCurves,
	})
	s.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Handler:      metrics.LatencyHandler(r),
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Printf("Listening and serving on %s%s", srv.Addr, env.Prefix)
	log.Fatal(srv.ListenAndServe())
}
