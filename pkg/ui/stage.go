package ui

import (
	"github.com/vanderheijden86/annualreport/pkg/nav"
	"github.com/vanderheijden86/annualreport/pkg/slides"
)

// stage receives the controller's callbacks. It is shared by pointer
// between Model copies, and Update drains it after each dispatch.
type stage struct {
	visible slides.ID
	chrome  nav.Chrome
	entered []slides.ID
}

func newStage(reg *slides.Registry) *stage {
	return &stage{
		visible: reg.IDAt(0),
		chrome:  nav.Derive(0, reg.Count()),
	}
}

// Swap implements nav.Stage.
func (s *stage) Swap(from, to slides.ID) {
	s.visible = to
	s.entered = append(s.entered, to)
}

// UpdateChrome implements nav.Updater.
func (s *stage) UpdateChrome(c nav.Chrome) {
	s.chrome = c
}

// drain returns and clears the slides entered since the last call.
func (s *stage) drain() []slides.ID {
	out := s.entered
	s.entered = nil
	return out
}
