// Command phase prints the current tide phase for a station, plus the
// upcoming extrema. Handy for checking the dashboard's numbers from a shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/seaward/tidewatch/pkg/coops"
	"github.com/seaward/tidewatch/pkg/tide"
	"github.com/seaward/tidewatch/pkg/timespan"
)

func main() {
	stationID := flag.String("station", "9413745", "CO-OPS station ID")
	flag.Parse()

	station, ok := coops.StationByID(*stationID)
	if !ok {
		fmt.Printf("unknown station %q\n", *stationID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), coops.FetchTimeout)
	defer cancel()

	events, err := coops.NewClient().HiloEvents(ctx, station,
		timespan.FromNow(-timespan.Day, timespan.Day))
	if err != nil {
		fmt.Printf("failed to fetch extrema: %v\n", err)
		return
	}

	now := time.Now()
	phase := tide.ComputePhaseFromHilo(events, now)
	fmt.Printf("%s: %s\n", station.Name, phase.Label())

	for _, e := range events {
		if e.Time.Before(now) {
			continue
		}
		fmt.Printf("  %s %s %.1f ft\n", e.Time.Format("Mon 15:04"), e.Kind, e.Level)
	}
}
