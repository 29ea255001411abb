package tide

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const phaseUnavailable = "tide phase unavailable"

// Direction is the arrow drawn next to the phase percentage.
type Direction int

const (
	DirectionNeutral Direction = iota
	DirectionRising
	DirectionFalling
)

// Arrow renders the direction indicator.
func (d Direction) Arrow() string {
	switch d {
	case DirectionRising:
		return "↑"
	case DirectionFalling:
		return "↓"
	default:
		return "→"
	}
}

// PhaseResult describes progress through the current tide cycle. It is
// computed fresh on every request and never cached. Prev and Next are nil
// when no bracketing pair of events exists, in which case PercentElapsed is
// meaningless and Label reports the unavailable sentinel.
type PhaseResult struct {
	Prev *TideEvent `json:"prev"`
	Next *TideEvent `json:"next"`

	// PercentElapsed is the fraction of the cycle already elapsed,
	// expressed 0-100 and rounded for display.
	PercentElapsed int       `json:"percentElapsed"`
	Direction      Direction `json:"direction"`
}

// Valid reports whether the phase has a usable bracketing pair.
func (r PhaseResult) Valid() bool {
	return r.Prev != nil && r.Next != nil
}

// Label renders the phase for display, or the unavailable sentinel.
func (r PhaseResult) Label() string {
	if !r.Valid() {
		return phaseUnavailable
	}
	return fmt.Sprintf("%d%% %s from %s to %s",
		r.PercentElapsed, r.Direction.Arrow(), r.Prev.Kind, r.Next.Kind)
}

// ComputePhaseFromHilo finds the events bracketing now and the fractional
// progress between them. The upstream source happens to return events
// chronologically, but that ordering is its contract, not ours; a copy is
// sorted here rather than trusted.
func ComputePhaseFromHilo(events []TideEvent, now time.Time) PhaseResult {
	if len(events) < 2 {
		return PhaseResult{}
	}

	sorted := make([]TideEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	// Single forward scan: track the latest event at or before now, stop at
	// the first event strictly after it.
	var prev, next *TideEvent
	for i := range sorted {
		if !sorted[i].Time.After(now) {
			prev = &sorted[i]
			continue
		}
		next = &sorted[i]
		break
	}

	// Now before the first event or after the last leaves no bracket.
	if prev == nil || next == nil {
		return PhaseResult{}
	}

	cycle := next.Time.Sub(prev.Time)
	if cycle <= 0 {
		return PhaseResult{}
	}
	frac := float64(now.Sub(prev.Time)) / float64(cycle)

	return PhaseResult{
		Prev:           prev,
		Next:           next,
		PercentElapsed: int(math.Round(frac * 100)),
		Direction:      directionBetween(prev.Kind, next.Kind),
	}
}

// directionBetween maps a (prev, next) kind pair to an arrow. A low-to-high
// cycle is rising water, high-to-low is falling. Matching kinds should not
// happen in real hilo data and render neutral.
func directionBetween(prev, next EventKind) Direction {
	switch {
	case prev == Low && next == High:
		return DirectionRising
	case prev == High && next == Low:
		return DirectionFalling
	default:
		return DirectionNeutral
	}
}
