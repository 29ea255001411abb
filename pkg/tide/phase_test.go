package tide

import (
	"testing"
	"time"
)

func TestComputePhaseFromHilo(t *testing.T) {
	high := TideEvent{
		Time:  time.Date(2026, time.January, 13, 10, 0, 0, 0, time.Local),
		Level: 4.1,
		Kind:  High,
	}
	low := TideEvent{
		Time:  time.Date(2026, time.January, 13, 16, 0, 0, 0, time.Local),
		Level: -0.2,
		Kind:  Low,
	}
	now := time.Date(2026, time.January, 13, 13, 0, 0, 0, time.Local)

	got := ComputePhaseFromHilo([]TideEvent{high, low}, now)

	if !got.Valid() {
		t.Fatalf("expected valid phase, got %+v", got)
	}
	if got.PercentElapsed != 50 {
		t.Errorf("PercentElapsed = %d, want 50", got.PercentElapsed)
	}
	if got.Prev.Kind != High || !got.Prev.Time.Equal(high.Time) {
		t.Errorf("Prev = %v, want %v", got.Prev, high)
	}
	if got.Next.Kind != Low || !got.Next.Time.Equal(low.Time) {
		t.Errorf("Next = %v, want %v", got.Next, low)
	}
	if got.Direction != DirectionFalling {
		t.Errorf("Direction = %v, want falling", got.Direction)
	}
}

func TestComputePhaseFromHiloUnsortedInput(t *testing.T) {
	// The engine sorts at its boundary rather than trusting the source's
	// ordering.
	events := []TideEvent{
		{Time: time.Date(2026, time.January, 13, 16, 0, 0, 0, time.Local), Level: -0.2, Kind: Low},
		{Time: time.Date(2026, time.January, 13, 10, 0, 0, 0, time.Local), Level: 4.1, Kind: High},
	}
	now := time.Date(2026, time.January, 13, 11, 30, 0, 0, time.Local)

	got := ComputePhaseFromHilo(events, now)
	if !got.Valid() {
		t.Fatalf("expected valid phase, got %+v", got)
	}
	if got.PercentElapsed != 25 {
		t.Errorf("PercentElapsed = %d, want 25", got.PercentElapsed)
	}
}

func TestComputePhaseFromHiloDirection(t *testing.T) {
	mk := func(hour int, kind EventKind) TideEvent {
		return TideEvent{
			Time: time.Date(2026, time.January, 13, hour, 0, 0, 0, time.Local),
			Kind: kind,
		}
	}
	now := time.Date(2026, time.January, 13, 12, 0, 0, 0, time.Local)

	table := []struct {
		name   string
		events []TideEvent
		want   Direction
	}{
		{"low to high rises", []TideEvent{mk(10, Low), mk(16, High)}, DirectionRising},
		{"high to low falls", []TideEvent{mk(10, High), mk(16, Low)}, DirectionFalling},
		{"like kinds are neutral", []TideEvent{mk(10, High), mk(16, High)}, DirectionNeutral},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputePhaseFromHilo(tc.events, now)
			if got.Direction != tc.want {
				t.Errorf("Direction = %v, want %v", got.Direction, tc.want)
			}
		})
	}
}

func TestComputePhaseFromHiloDegenerate(t *testing.T) {
	h := TideEvent{Time: time.Date(2026, time.January, 13, 10, 0, 0, 0, time.Local), Kind: High}
	l := TideEvent{Time: time.Date(2026, time.January, 13, 16, 0, 0, 0, time.Local), Kind: Low}

	table := []struct {
		name   string
		events []TideEvent
		now    time.Time
	}{
		{"no events", nil, time.Date(2026, time.January, 13, 12, 0, 0, 0, time.Local)},
		{"single event", []TideEvent{h}, time.Date(2026, time.January, 13, 12, 0, 0, 0, time.Local)},
		{"now before first", []TideEvent{h, l}, time.Date(2026, time.January, 13, 9, 0, 0, 0, time.Local)},
		{"now after last", []TideEvent{h, l}, time.Date(2026, time.January, 13, 17, 0, 0, 0, time.Local)},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputePhaseFromHilo(tc.events, tc.now)
			if got.Valid() {
				t.Errorf("expected invalid phase, got %+v", got)
			}
			if got.Prev != nil || got.Next != nil {
				t.Errorf("expected nil events, got prev=%v next=%v", got.Prev, got.Next)
			}
			if got.Label() != "tide phase unavailable" {
				t.Errorf("Label() = %q, want sentinel", got.Label())
			}
		})
	}
}

func TestPhaseLabel(t *testing.T) {
	h := TideEvent{Time: time.Date(2026, time.January, 13, 10, 0, 0, 0, time.Local), Kind: High}
	l := TideEvent{Time: time.Date(2026, time.January, 13, 16, 0, 0, 0, time.Local), Kind: Low}
	now := time.Date(2026, time.January, 13, 13, 0, 0, 0, time.Local)

	got := ComputePhaseFromHilo([]TideEvent{h, l}, now).Label()
	want := "50% ↓ from high to low"
	if got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}
