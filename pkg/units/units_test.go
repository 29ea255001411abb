package units

import (
	"math"
	"testing"
)

func TestParseFloat(t *testing.T) {
	table := []struct {
		input string
		want  *float64
	}{
		{"4.080", Ptr(4.08)},
		{"-0.3", Ptr(-0.3)},
		{" 12.5 ", Ptr(12.5)},
		{"", nil},
		{"n/a", nil},
		{"--", nil},
	}

	for _, tc := range table {
		t.Run(tc.input, func(t *testing.T) {
			got := ParseFloat(tc.input)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("ParseFloat(%q) = %v, want %v", tc.input, got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Errorf("ParseFloat(%q) = %f, want %f", tc.input, *got, *tc.want)
			}
		})
	}
}

func TestConversionsPropagateNil(t *testing.T) {
	if KnotsToMPH(nil) != nil {
		t.Error("KnotsToMPH(nil) should be nil")
	}
	if PascalsToInHg(nil) != nil {
		t.Error("PascalsToInHg(nil) should be nil")
	}
	if MillibarsToInHg(nil) != nil {
		t.Error("MillibarsToInHg(nil) should be nil")
	}
	if CelsiusToFahrenheit(nil) != nil {
		t.Error("CelsiusToFahrenheit(nil) should be nil")
	}
	if MetersToFeet(nil) != nil {
		t.Error("MetersToFeet(nil) should be nil")
	}
}

func TestConversions(t *testing.T) {
	table := []struct {
		name string
		got  *float64
		want float64
	}{
		{"knots", KnotsToMPH(Ptr(10)), 11.5078},
		{"pascals", PascalsToInHg(Ptr(101325)), 29.921},
		{"millibars", MillibarsToInHg(Ptr(1013.25)), 29.921},
		{"celsius", CelsiusToFahrenheit(Ptr(100)), 212},
		{"meters", MetersToFeet(Ptr(2)), 6.56168},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got == nil {
				t.Fatal("unexpected nil")
			}
			if math.Abs(*tc.got-tc.want) > 1e-3 {
				t.Errorf("got %f, want %f", *tc.got, tc.want)
			}
		})
	}
}
