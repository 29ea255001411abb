package tide

import (
	"time"
)

// CurveBundle is the chart-ready merge of a predicted and an observed water
// level series. The two series keep their own time axes; the charting
// consumer plots both against one shared time scale. Forcing them onto a
// synthetic shared grid of category labels was tried and proved fragile.
type CurveBundle struct {
	Predicted Series `json:"predicted"`

	// Observed is nil when no measured data is available; the consumer
	// renders an "observed unavailable" state rather than an empty curve.
	Observed Series `json:"observed"`

	// NowIndex locates the sample nearest the assembly instant, for the
	// consumer to draw a "now" marker. It indexes Predicted unless
	// NoPredictions is set, in which case it indexes Observed.
	NowIndex int `json:"nowIndex"`

	// NoPredictions marks a bundle assembled from observations alone.
	NoPredictions bool `json:"noPredictions"`
}

// AssembleCurve merges the predicted and observed series for the 24-hour
// chart. The series may cover different windows and different sample counts.
// Without predictions there is no meaningful chart and the result is nil —
// unless allowObservedOnly is set, in which case observations alone are
// acceptable and the bundle is flagged NoPredictions.
func AssembleCurve(predicted, observed Series, now time.Time, allowObservedOnly bool) *CurveBundle {
	if len(predicted) == 0 {
		if !allowObservedOnly || len(observed) == 0 {
			return nil
		}
		return &CurveBundle{
			Observed:      observed,
			NowIndex:      NearestIndex(observed, now),
			NoPredictions: true,
		}
	}

	bundle := &CurveBundle{
		Predicted: predicted,
		NowIndex:  NearestIndex(predicted, now),
	}
	if len(observed) > 0 {
		bundle.Observed = observed
	}
	return bundle
}
