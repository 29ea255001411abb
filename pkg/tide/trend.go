package tide

// DefaultTrendThreshold is the dead-band, in feet, below which consecutive
// water levels are reported as steady. It suppresses label flapping from
// sensor noise near a turning point.
const DefaultTrendThreshold = 0.05

// Trend labels the monotonic direction of a pair of leveled values.
type Trend int

const (
	TrendUnknown Trend = iota
	TrendRising
	TrendFalling
	TrendSteady
)

func (t Trend) String() string {
	switch t {
	case TrendRising:
		return "rising"
	case TrendFalling:
		return "falling"
	case TrendSteady:
		return "steady"
	default:
		return "unknown"
	}
}

// DetermineTrend compares the current level against the previous one with a
// dead-band. Either side missing yields TrendUnknown.
func DetermineTrend(current, previous *float64, threshold float64) Trend {
	if current == nil || previous == nil {
		return TrendUnknown
	}
	delta := *current - *previous
	switch {
	case delta > threshold:
		return TrendRising
	case delta < -threshold:
		return TrendFalling
	default:
		return TrendSteady
	}
}

// DetermineDelta computes the signed observed-minus-predicted difference for
// a nearest-sample pair. Either side missing yields nil.
func DetermineDelta(observed, predicted *float64) *float64 {
	if observed == nil || predicted == nil {
		return nil
	}
	d := *observed - *predicted
	return &d
}
