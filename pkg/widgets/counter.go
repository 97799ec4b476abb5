// Package widgets holds the self-contained pieces embedded in slides:
// counters, the department carousel, quotes, the photo gallery, season
// cards, the identity reveal, the loading simulation and terminal charts.
//
// Widgets are plain state machines. Timing is driven by the caller, which
// calls Step/Tick on the documented interval.
package widgets

import (
	"math"
	"strconv"
	"time"
)

// CounterInterval is the delay between counter steps.
const CounterInterval = 20 * time.Millisecond

// counterSteps is how many increments a counter takes to reach its target.
const counterSteps = 100

// Counter animates from zero to Target.
type Counter struct {
	Target  int
	current float64
	done    bool
	started bool
}

// NewCounter returns an idle counter for target.
func NewCounter(target int) *Counter {
	return &Counter{Target: target}
}

// Start marks the counter as visible. Starting twice is a no-op and
// reports false.
func (c *Counter) Start() bool {
	if c.started {
		return false
	}
	c.started = true
	return true
}

// Started reports whether Start was called.
func (c *Counter) Started() bool { return c.started }

// Step advances one increment and reports whether another step is due.
func (c *Counter) Step() bool {
	if c.done {
		return false
	}
	if c.current < float64(c.Target) {
		c.current += float64(c.Target) / counterSteps
		return true
	}
	c.done = true
	return false
}

// Done reports whether the counter has settled on its target.
func (c *Counter) Done() bool { return c.done }

// Value returns the number currently displayed.
func (c *Counter) Value() int {
	if c.done {
		return c.Target
	}
	return min(int(math.Floor(c.current)), c.Target)
}

// String formats Value with thousands separators.
func (c *Counter) String() string {
	return FormatThousands(c.Value())
}

// FormatThousands renders n with comma group separators, e.g. 3,456.
func FormatThousands(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}
