// Package input turns raw pointer and key events into navigation intents.
//
// Adapters never move slides themselves. Each produces an Intent which
// Dispatch hands to a Navigator.
package input

import (
	"github.com/vanderheijden86/annualreport/pkg/nav"
	"github.com/vanderheijden86/annualreport/pkg/slides"
)

// Kind classifies an Intent.
type Kind int

const (
	None Kind = iota
	Relative
	Show
	Home
)

// Intent is a directional or absolute navigation request.
type Intent struct {
	Kind      Kind
	Direction nav.Direction // Relative
	Target    slides.ID     // Show
}

// NextIntent, PrevIntent and friends are the common intents.
var (
	NoIntent   = Intent{}
	NextIntent = Intent{Kind: Relative, Direction: nav.Next}
	PrevIntent = Intent{Kind: Relative, Direction: nav.Previous}
	HomeIntent = Intent{Kind: Home}
)

// ShowIntent jumps to target.
func ShowIntent(target slides.ID) Intent {
	return Intent{Kind: Show, Target: target}
}

// Navigator is the part of nav.Controller the adapters drive.
type Navigator interface {
	State() nav.State
	RequestShow(slides.ID) bool
	RequestRelative(nav.Direction) bool
	GoHome() bool
}

// Dispatch hands in to n and reports whether a transition started.
func Dispatch(n Navigator, in Intent) bool {
	switch in.Kind {
	case Relative:
		return n.RequestRelative(in.Direction)
	case Show:
		return n.RequestShow(in.Target)
	case Home:
		return n.GoHome()
	default:
		return false
	}
}
