package nws

import (
	"strings"

	"github.com/seaward/tidewatch/pkg/units"
)

// parseWindSpeed extracts a speed in mph from the source's prose encodings:
// "10 mph", "10 to 20 mph", or empty. Ranges report their upper bound. An
// empty or unrecognized string is nil.
func parseWindSpeed(s string) *float64 {
	var last *float64
	for _, field := range strings.Fields(s) {
		if v := units.ParseFloat(field); v != nil {
			last = v
		}
	}
	return last
}
