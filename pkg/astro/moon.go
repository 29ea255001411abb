package astro

import (
	"math"
	"time"
)

// synodicMonth is the mean lunation period in days.
const synodicMonth = 29.530588853

// referenceNewMoon is a known new moon, 2000-01-06 18:14 UTC.
var referenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

var phaseNames = []string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// MoonPhase names the moon phase at t from the mean synodic cycle. Mean
// cycle arithmetic can be off by several hours around the exact quarter
// instants, which is fine for a per-day descriptor.
func MoonPhase(t time.Time) string {
	days := t.Sub(referenceNewMoon).Hours() / 24
	age := math.Mod(days, synodicMonth)
	if age < 0 {
		age += synodicMonth
	}

	// Each principal phase owns a 1/16 band either side of its instant.
	idx := int(math.Floor(age/synodicMonth*8 + 0.5))
	return phaseNames[idx%8]
}
