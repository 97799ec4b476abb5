package nav

import (
	"errors"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/annualreport/pkg/slides"
)

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock { return &fakeClock{t: time.Date(2025, 12, 31, 20, 0, 0, 0, time.UTC)} }
func (f *fakeClock) Now() time.Time { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

type recordingStage struct{ swaps [][2]slides.ID }

func (s *recordingStage) Swap(from, to slides.ID) { s.swaps = append(s.swaps, [2]slides.ID{from, to}) }

type recordingUpdater struct{ chromes []Chrome }

func (u *recordingUpdater) UpdateChrome(c Chrome) { u.chromes = append(u.chromes, c) }

type fakeAudio struct {
	enabled bool
	err     error
	plays   int
}

func (a *fakeAudio) Enabled() bool { return a.enabled }
func (a *fakeAudio) Play() error {
	a.plays++
	return a.err
}

func newTestController(clock *fakeClock, opts ...Option) *Controller {
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return New(slides.DefaultRegistry(), opts...)
}

func TestRequestShowOpensTransitionWindow(t *testing.T) {
	clock := newFakeClock()
	stage := &recordingStage{}
	updater := &recordingUpdater{}
	c := newTestController(clock, WithStage(stage), WithUpdater(updater))

	if !c.RequestShow(slides.Cover) {
		t.Fatal("first request should be accepted")
	}
	st := c.State()
	if st.CurrentIndex != 1 || !st.Transitioning {
		t.Fatalf("unexpected state after show: %+v", st)
	}
	if len(stage.swaps) != 1 || stage.swaps[0] != [2]slides.ID{slides.Loading, slides.Cover} {
		t.Fatalf("stage swaps = %v", stage.swaps)
	}
	if len(updater.chromes) != 1 || updater.chromes[0].Index != 1 {
		t.Fatalf("updater not called with new index: %+v", updater.chromes)
	}

	clock.Advance(TransitionWindow - time.Millisecond)
	if !c.Transitioning() {
		t.Fatal("still inside the window")
	}
	clock.Advance(time.Millisecond)
	if c.Transitioning() {
		t.Fatal("window should have elapsed")
	}
	if !c.SettleAt().IsZero() {
		t.Fatal("SettleAt should be zero once settled")
	}
}

func TestRequestsDuringTransitionAreDropped(t *testing.T) {
	clock := newFakeClock()
	updater := &recordingUpdater{}
	c := newTestController(clock, WithUpdater(updater))

	c.RequestShow(slides.Page(3))
	before := c.State()

	if c.RequestShow(slides.Page(7)) {
		t.Fatal("show during transition must be dropped")
	}
	if c.RequestRelative(Next) || c.RequestRelative(Previous) || c.GoHome() {
		t.Fatal("relative requests during transition must be dropped")
	}
	if after := c.State(); after != before {
		t.Fatalf("state changed during transition: %+v -> %+v", before, after)
	}
	if len(updater.chromes) != 1 {
		t.Fatalf("dropped requests must not update chrome, got %d updates", len(updater.chromes))
	}

	clock.Advance(TransitionWindow)
	if !c.RequestShow(slides.Page(7)) {
		t.Fatal("request after the window should be accepted")
	}
}

func TestRelativeBounds(t *testing.T) {
	clock := newFakeClock()
	c := newTestController(clock)
	reg := c.Registry()

	c.RequestShow(slides.Page(slides.ContentPages))
	clock.Advance(TransitionWindow)
	if !c.RequestRelative(Next) {
		t.Fatal("next from last content slide should reach ending")
	}
	clock.Advance(TransitionWindow)
	if got := c.State().CurrentIndex; got != reg.LastIndex() {
		t.Fatalf("expected ending index %d, got %d", reg.LastIndex(), got)
	}
	if c.RequestRelative(Next) {
		t.Fatal("next from ending must be a no-op")
	}
	if c.Transitioning() {
		t.Fatal("a no-op must not open the window")
	}

	c.RequestShow(slides.Cover)
	clock.Advance(TransitionWindow)
	if c.RequestRelative(Previous) {
		t.Fatal("previous from cover must be a no-op")
	}
	if got := c.State().CurrentIndex; got != 1 {
		t.Fatalf("expected to stay on cover, got %d", got)
	}
}

func TestNextFromLoadingReachesCover(t *testing.T) {
	clock := newFakeClock()
	c := newTestController(clock)
	if !c.RequestRelative(Next) || c.Current() != slides.Cover {
		t.Fatalf("next from loading should show cover, at %s", c.Current())
	}
}

func TestUnknownTargetPanics(t *testing.T) {
	c := newTestController(newFakeClock())
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unregistered slide")
		}
	}()
	c.RequestShow("page42")
}

func TestCoverStartsAudioAndSwallowsFailure(t *testing.T) {
	clock := newFakeClock()
	audio := &fakeAudio{enabled: true, err: errors.New("autoplay blocked")}
	c := newTestController(clock, WithAudio(audio))

	if !c.RequestShow(slides.Cover) {
		t.Fatal("audio failure must not block navigation")
	}
	if audio.plays != 1 {
		t.Fatalf("expected one play attempt, got %d", audio.plays)
	}

	clock.Advance(TransitionWindow)
	c.RequestShow(slides.Page(1))
	if audio.plays != 1 {
		t.Fatal("only the cover starts audio")
	}

	clock.Advance(TransitionWindow)
	audio.enabled = false
	c.GoHome()
	if audio.plays != 1 {
		t.Fatal("disabled audio must not play")
	}
}

func TestZeroWindowNeverLocks(t *testing.T) {
	c := New(slides.DefaultRegistry(), WithWindow(0))
	c.RequestShow(slides.Cover)
	if c.Transitioning() {
		t.Fatal("zero window should not lock")
	}
	if !c.RequestRelative(Next) {
		t.Fatal("second request should pass with zero window")
	}
}

func TestShowDot(t *testing.T) {
	clock := newFakeClock()
	c := newTestController(clock)
	chrome := c.Chrome()
	dot := chrome.Dots[4]
	if !c.ShowDot(dot) {
		t.Fatal("dot jump should be accepted")
	}
	if got := c.State().CurrentIndex; got != dot.Index {
		t.Fatalf("dot jump landed on %d, want %d", got, dot.Index)
	}
}

func TestPropertyShowThenSettle(t *testing.T) {
	reg := slides.DefaultRegistry()
	rapid.Check(t, func(t *rapid.T) {
		clock := newFakeClock()
		c := New(reg, WithClock(clock.Now))
		target := rapid.SampledFrom(reg.IDs()).Draw(t, "target")

		if !c.RequestShow(target) {
			t.Fatalf("idle controller rejected %s", target)
		}
		st := c.State()
		if st.CurrentIndex != reg.IndexOf(target) || !st.Transitioning {
			t.Fatalf("state after show(%s) = %+v", target, st)
		}
		clock.Advance(TransitionWindow)
		if c.Transitioning() {
			t.Fatal("transition did not settle")
		}
	})
}

func TestPropertyRequestsWhileTransitioningAreNoOps(t *testing.T) {
	reg := slides.DefaultRegistry()
	rapid.Check(t, func(t *rapid.T) {
		clock := newFakeClock()
		c := New(reg, WithClock(clock.Now))
		c.RequestShow(rapid.SampledFrom(reg.IDs()).Draw(t, "first"))
		before := c.State()

		n := rapid.IntRange(1, 20).Draw(t, "requests")
		for i := 0; i < n; i++ {
			clock.Advance(time.Duration(rapid.IntRange(0, 20).Draw(t, "elapsed_ms")) * time.Millisecond)
			if !c.Transitioning() {
				break
			}
			switch rapid.IntRange(0, 2).Draw(t, "kind") {
			case 0:
				c.RequestShow(rapid.SampledFrom(reg.IDs()).Draw(t, "target"))
			case 1:
				c.RequestRelative(Next)
			default:
				c.RequestRelative(Previous)
			}
			if got := c.State().CurrentIndex; got != before.CurrentIndex {
				t.Fatalf("index moved from %d to %d during transition", before.CurrentIndex, got)
			}
		}
	})
}

func TestPropertyRelativeStaysInRange(t *testing.T) {
	reg := slides.DefaultRegistry()
	rapid.Check(t, func(t *rapid.T) {
		clock := newFakeClock()
		c := New(reg, WithClock(clock.Now))
		c.RequestShow(slides.Cover)
		steps := rapid.SliceOfN(rapid.SampledFrom([]Direction{Next, Previous}), 1, 40).Draw(t, "steps")
		for _, dir := range steps {
			clock.Advance(TransitionWindow)
			c.RequestRelative(dir)
			idx := c.State().CurrentIndex
			if idx < 1 || idx > reg.LastIndex() {
				t.Fatalf("index %d left [1,%d] after %s", idx, reg.LastIndex(), dir)
			}
		}
	})
}
