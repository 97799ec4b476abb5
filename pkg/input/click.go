package input

import (
	"github.com/vanderheijden86/annualreport/pkg/nav"
	"github.com/vanderheijden86/annualreport/pkg/slides"
)

// Zone is a clickable rectangle in terminal cells. X1 and Y1 are exclusive.
type Zone struct {
	Name   string
	X0, Y0 int
	X1, Y1 int
}

// Contains reports whether the cell lies inside z.
func (z Zone) Contains(col, row int) bool {
	return col >= z.X0 && col < z.X1 && row >= z.Y0 && row < z.Y1
}

// Zones is a hit-test list. Later zones sit on top of earlier ones.
type Zones []Zone

// Hit returns the topmost zone containing the cell.
func (zs Zones) Hit(col, row int) (Zone, bool) {
	for i := len(zs) - 1; i >= 0; i-- {
		if zs[i].Contains(col, row) {
			return zs[i], true
		}
	}
	return Zone{}, false
}

// CoverTap is the intent for a tap on the cover. A tap on an embedded
// control (the music toggle) is not a navigation tap.
func CoverTap(onControl bool) Intent {
	if onControl {
		return NoIntent
	}
	return ShowIntent(slides.Page(1))
}

// DotTap is the intent for a tap on a navigation dot.
func DotTap(reg *slides.Registry, d nav.Dot) Intent {
	return ShowIntent(reg.IDAt(d.Index))
}
