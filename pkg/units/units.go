// Package units holds nil-safe numeric parsing and unit conversions for
// upstream values. Absent or unparseable values are nil, never zero.
package units

import (
	"strconv"
	"strings"
)

const (
	knotsToMPH     = 1.15078
	pascalsPerInHg = 3386.389
	metersToFeet   = 3.28084
)

// ParseFloat converts a string-encoded reading to a float. Upstream sources
// encode numbers as strings and sometimes send empty or garbage values; those
// come back as nil.
func ParseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// KnotsToMPH converts a wind speed in knots to miles per hour.
func KnotsToMPH(knots *float64) *float64 {
	if knots == nil {
		return nil
	}
	mph := *knots * knotsToMPH
	return &mph
}

// PascalsToInHg converts a barometric pressure in pascals to inches of
// mercury.
func PascalsToInHg(pa *float64) *float64 {
	if pa == nil {
		return nil
	}
	inhg := *pa / pascalsPerInHg
	return &inhg
}

// MillibarsToInHg converts a barometric pressure in millibars (hPa) to inches
// of mercury.
func MillibarsToInHg(mb *float64) *float64 {
	if mb == nil {
		return nil
	}
	pa := *mb * 100
	return PascalsToInHg(&pa)
}

// CelsiusToFahrenheit converts a temperature.
func CelsiusToFahrenheit(c *float64) *float64 {
	if c == nil {
		return nil
	}
	f := *c*9/5 + 32
	return &f
}

// MetersToFeet converts a length.
func MetersToFeet(m *float64) *float64 {
	if m == nil {
		return nil
	}
	ft := *m * metersToFeet
	return &ft
}

// Ptr is a convenience for building optional values.
func Ptr(f float64) *float64 {
	return &f
}
