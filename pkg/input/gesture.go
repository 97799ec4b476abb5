package input

import (
	"math"

	"github.com/vanderheijden86/annualreport/pkg/nav"
)

// SwipeThreshold is the minimum vertical travel, in pixels, of a swipe.
const SwipeThreshold = 50.0

// TapSlop is the travel, in pixels, below which a release is a tap.
const TapSlop = 1.0

// Nominal pixel size of one terminal cell, used to scale mouse drags.
const (
	CellWidthPx  = 8.0
	CellHeightPx = 16.0
)

// Sample is the start of one press-release session.
type Sample struct {
	StartX, StartY float64
}

// Resolution is the outcome of a completed gesture.
type Resolution struct {
	Intent Intent
	Tap    bool
	DiffX  float64
	DiffY  float64
}

// Gesture recognizes vertical swipes.
type Gesture struct {
	threshold float64
	sample    *Sample
}

// NewGesture returns a recognizer. A non-positive threshold uses
// SwipeThreshold.
func NewGesture(threshold float64) *Gesture {
	if threshold <= 0 {
		threshold = SwipeThreshold
	}
	return &Gesture{threshold: threshold}
}

// Threshold returns the swipe threshold in pixels.
func (g *Gesture) Threshold() float64 { return g.threshold }

// Active reports whether a press is being tracked.
func (g *Gesture) Active() bool { return g.sample != nil }

// Begin records the press position.
func (g *Gesture) Begin(x, y float64) {
	g.sample = &Sample{StartX: x, StartY: y}
}

// BeginCell records a press given in terminal cells.
func (g *Gesture) BeginCell(col, row int) {
	g.Begin(float64(col)*CellWidthPx, float64(row)*CellHeightPx)
}

// End resolves the session against the release position and discards the
// sample. A release without a press resolves to nothing.
func (g *Gesture) End(x, y float64, st nav.State) Resolution {
	if g.sample == nil {
		return Resolution{}
	}
	s := *g.sample
	g.sample = nil

	res := Resolution{
		DiffX: s.StartX - x,
		DiffY: s.StartY - y,
	}
	if math.Abs(res.DiffX) < TapSlop && math.Abs(res.DiffY) < TapSlop {
		res.Tap = true
		return res
	}
	res.Intent = ResolveSwipe(res.DiffX, res.DiffY, g.threshold, st)
	return res
}

// EndCell resolves a release given in terminal cells.
func (g *Gesture) EndCell(col, row int, st nav.State) Resolution {
	return g.End(float64(col)*CellWidthPx, float64(row)*CellHeightPx, st)
}

// ResolveSwipe maps travel to an intent. Positive diffY means the pointer
// moved up, which reads as "next". Swiping back is refused on the cover so
// the loading slide is never reached again.
func ResolveSwipe(diffX, diffY, threshold float64, st nav.State) Intent {
	if st.Transitioning {
		return NoIntent
	}
	if math.Abs(diffY) <= math.Abs(diffX) || math.Abs(diffY) <= threshold {
		return NoIntent
	}
	if diffY > 0 {
		return NextIntent
	}
	if st.CurrentIndex > 1 {
		return PrevIntent
	}
	return NoIntent
}
