package input

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/annualreport/pkg/nav"
	"github.com/vanderheijden86/annualreport/pkg/slides"
)

func TestResolveSwipe(t *testing.T) {
	idle := nav.State{CurrentIndex: 5}
	tests := []struct {
		name         string
		diffX, diffY float64
		st           nav.State
		want         Intent
	}{
		{"vertical up above threshold", 10, 60, idle, NextIntent},
		{"vertical down above threshold", 10, -60, idle, PrevIntent},
		{"below threshold", 0, 30, idle, NoIntent},
		{"exactly threshold", 0, 50, idle, NoIntent},
		{"horizontal dominant", 80, 60, idle, NoIntent},
		{"transitioning", 10, 60, nav.State{CurrentIndex: 5, Transitioning: true}, NoIntent},
		{"back from cover refused", 0, -80, nav.State{CurrentIndex: 1}, NoIntent},
		{"back from first content slide", 0, -80, nav.State{CurrentIndex: 2}, PrevIntent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSwipe(tt.diffX, tt.diffY, SwipeThreshold, tt.st); got != tt.want {
				t.Fatalf("ResolveSwipe(%v, %v) = %+v, want %+v", tt.diffX, tt.diffY, got, tt.want)
			}
		})
	}
}

func TestGestureSessionLifecycle(t *testing.T) {
	g := NewGesture(0)
	if g.Threshold() != SwipeThreshold {
		t.Fatalf("default threshold = %v", g.Threshold())
	}
	if res := g.End(0, 0, nav.State{}); res.Intent != NoIntent || res.Tap {
		t.Fatal("release without press must resolve to nothing")
	}

	g.Begin(100, 200)
	if !g.Active() {
		t.Fatal("press should be tracked")
	}
	res := g.End(90, 140, nav.State{CurrentIndex: 3})
	if res.Intent != NextIntent || res.DiffY != 60 || res.DiffX != 10 {
		t.Fatalf("unexpected resolution %+v", res)
	}
	if g.Active() {
		t.Fatal("sample must be discarded after release")
	}

	g.Begin(5, 5)
	if res := g.End(5, 5, nav.State{CurrentIndex: 3}); !res.Tap || res.Intent != NoIntent {
		t.Fatalf("zero travel should be a tap, got %+v", res)
	}
}

func TestGestureCellsScaleToPixels(t *testing.T) {
	g := NewGesture(SwipeThreshold)
	g.BeginCell(10, 10)
	// four rows up is 64px of travel
	if res := g.EndCell(10, 6, nav.State{CurrentIndex: 4}); res.Intent != NextIntent {
		t.Fatalf("four-row drag should swipe, got %+v", res)
	}
	g.BeginCell(10, 10)
	if res := g.EndCell(10, 7, nav.State{CurrentIndex: 4}); res.Intent != NoIntent {
		t.Fatalf("three-row drag (48px) must stay under threshold, got %+v", res)
	}
}

func TestKeyIntent(t *testing.T) {
	idle := nav.State{CurrentIndex: 4}
	tests := []struct {
		key     string
		want    Intent
		handled bool
	}{
		{"down", NextIntent, true},
		{"right", NextIntent, true},
		{"up", PrevIntent, true},
		{"left", PrevIntent, true},
		{"home", HomeIntent, true},
		{"x", NoIntent, false},
	}
	for _, tt := range tests {
		got, handled := KeyIntent(tt.key, idle)
		if got != tt.want || handled != tt.handled {
			t.Errorf("KeyIntent(%q) = %+v, %v", tt.key, got, handled)
		}
	}

	got, handled := KeyIntent("down", nav.State{CurrentIndex: 4, Transitioning: true})
	if got != NoIntent || !handled {
		t.Fatalf("arrow during transition must be swallowed, got %+v %v", got, handled)
	}
}

func TestZonesHitTopmost(t *testing.T) {
	zs := Zones{
		{Name: "cover", X0: 0, Y0: 0, X1: 80, Y1: 24},
		{Name: "music", X0: 70, Y0: 0, X1: 80, Y1: 1},
	}
	if z, ok := zs.Hit(75, 0); !ok || z.Name != "music" {
		t.Fatalf("expected music, got %+v %v", z, ok)
	}
	if z, ok := zs.Hit(10, 10); !ok || z.Name != "cover" {
		t.Fatalf("expected cover, got %+v %v", z, ok)
	}
	if _, ok := zs.Hit(80, 24); ok {
		t.Fatal("bounds are exclusive")
	}
}

func TestCoverAndDotTaps(t *testing.T) {
	if CoverTap(true) != NoIntent {
		t.Fatal("tap on the music control must not navigate")
	}
	if got := CoverTap(false); got != ShowIntent(slides.Page(1)) {
		t.Fatalf("cover tap = %+v", got)
	}
	reg := slides.DefaultRegistry()
	if got := DotTap(reg, nav.Dot{Index: 3}); got.Target != reg.IDAt(3) {
		t.Fatalf("dot tap = %+v", got)
	}
}

func TestDispatchDrivesController(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := nav.New(slides.DefaultRegistry(), nav.WithClock(func() time.Time { return now }))

	if !Dispatch(c, ShowIntent(slides.Cover)) {
		t.Fatal("show should dispatch")
	}
	now = now.Add(nav.TransitionWindow)
	if !Dispatch(c, CoverTap(false)) || c.Current() != slides.Page(1) {
		t.Fatalf("cover tap should land on page1, at %s", c.Current())
	}
	now = now.Add(nav.TransitionWindow)
	if !Dispatch(c, HomeIntent) || c.Current() != slides.Cover {
		t.Fatal("home should return to cover")
	}
	if Dispatch(c, NoIntent) {
		t.Fatal("no intent must not dispatch")
	}
}

func TestPropertySwipeNeedsDominantVerticalTravel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dx := rapid.Float64Range(-500, 500).Draw(t, "dx")
		dy := rapid.Float64Range(-500, 500).Draw(t, "dy")
		idx := rapid.IntRange(0, 13).Draw(t, "index")
		got := ResolveSwipe(dx, dy, SwipeThreshold, nav.State{CurrentIndex: idx})
		abs := func(v float64) float64 {
			if v < 0 {
				return -v
			}
			return v
		}
		if got != NoIntent && (abs(dy) <= abs(dx) || abs(dy) <= SwipeThreshold) {
			t.Fatalf("swipe (%v,%v) produced %+v", dx, dy, got)
		}
		if got == PrevIntent && idx <= 1 {
			t.Fatalf("swiped back from index %d", idx)
		}
	})
}
