package widgets

import (
	"math/rand/v2"
	"time"
)

// Identity reveal timing: the animation runs for IdentityHold after an
// initial IdentityDelay, then the result replaces it.
const (
	IdentityDelay  = 1000 * time.Millisecond
	IdentityHold   = 3000 * time.Millisecond
	IdentityResult = "校园生活记录家"
)

// IdentityRevealed reports whether the result should be shown after
// elapsed time since the deck started.
func IdentityRevealed(elapsed time.Duration) bool {
	return elapsed >= IdentityDelay+IdentityHold
}

// Loading screen timing.
const (
	LoadingInterval = 100 * time.Millisecond
	CoverDelay      = 500 * time.Millisecond
	loadingMaxStep  = 10.0
)

// Loading simulates the start-up progress bar.
type Loading struct {
	rng     *rand.Rand
	percent float64
}

// NewLoading returns a simulation at 0% drawing increments from rng.
func NewLoading(rng *rand.Rand) *Loading {
	return &Loading{rng: rng}
}

// Tick adds a random increment in [0,10) and reports whether 100% was
// reached.
func (l *Loading) Tick() bool {
	if l.percent >= 100 {
		return true
	}
	l.percent += l.rng.Float64() * loadingMaxStep
	if l.percent >= 100 {
		l.percent = 100
		return true
	}
	return false
}

// Fraction returns progress in [0,1].
func (l *Loading) Fraction() float64 { return l.percent / 100 }

// Percent returns the displayed whole percentage.
func (l *Loading) Percent() int { return int(l.percent) }

// Done reports whether loading finished.
func (l *Loading) Done() bool { return l.percent >= 100 }
