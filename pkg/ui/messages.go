package ui

import (
	"github.com/vanderheijden86/annualreport/pkg/roster"
	"github.com/vanderheijden86/annualreport/pkg/slides"
)

type (
	loadingTickMsg  struct{}
	coverMsg        struct{}
	settledMsg      struct{}
	carouselTickMsg struct{}
	identityMsg     struct{}
	deckChangedMsg  struct{}
)

type counterTickMsg struct {
	slide slides.ID
}

type membersMsg struct {
	dept    string
	members []roster.Member
	err     error
}

type posterSavedMsg struct {
	path string
	err  error
}

type deckReloadedMsg struct {
	deck *slides.Deck
	err  error
}
