// Package nav owns the current-slide state of the report and the rules
// for moving between slides.
//
// A Controller serializes transitions: once a slide change starts, every
// request until the transition window has elapsed is dropped. Requests
// are never queued.
package nav

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vanderheijden86/annualreport/pkg/slides"
)

// TransitionWindow matches the visual slide transition.
const TransitionWindow = 500 * time.Millisecond

// Direction is a relative navigation intent.
type Direction int

const (
	Next Direction = iota + 1
	Previous
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Previous:
		return "previous"
	default:
		return "unknown"
	}
}

// State is a snapshot of the navigation state.
type State struct {
	CurrentIndex  int
	Transitioning bool
}

// Stage hides the previously visible slide and reveals the next one.
type Stage interface {
	Swap(from, to slides.ID)
}

// Updater receives the derived chrome after every successful transition.
type Updater interface {
	UpdateChrome(Chrome)
}

// Audio is the background music the cover starts.
type Audio interface {
	Enabled() bool
	Play() error
}

// Option configures a Controller.
type Option func(*Controller)

// WithStage sets the slide stage.
func WithStage(s Stage) Option {
	return func(c *Controller) { c.stage = s }
}

// WithUpdater sets the derived-chrome receiver.
func WithUpdater(u Updater) Option {
	return func(c *Controller) { c.updater = u }
}

// WithAudio sets the background audio started on the cover.
func WithAudio(a Audio) Option {
	return func(c *Controller) { c.audio = a }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithWindow overrides TransitionWindow.
func WithWindow(d time.Duration) Option {
	return func(c *Controller) { c.window = d }
}

// Controller is the sole owner of NavigationState.
type Controller struct {
	reg     *slides.Registry
	stage   Stage
	updater Updater
	audio   Audio
	log     *zap.Logger
	now     func() time.Time
	window  time.Duration

	mu      sync.Mutex
	current int
	// settleAt is when the running transition ends. The zero time, or any
	// time not after now, means no transition is running.
	settleAt time.Time
}

// New returns a controller positioned on the loading slide.
func New(reg *slides.Registry, opts ...Option) *Controller {
	c := &Controller{
		reg:    reg,
		log:    zap.NewNop(),
		now:    time.Now,
		window: TransitionWindow,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the registry the controller navigates.
func (c *Controller) Registry() *slides.Registry {
	return c.reg
}

// State returns the current navigation state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{CurrentIndex: c.current, Transitioning: c.transitioningLocked()}
}

// Current returns the id of the visible slide.
func (c *Controller) Current() slides.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reg.IDAt(c.current)
}

// Transitioning reports whether a transition window is open.
func (c *Controller) Transitioning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transitioningLocked()
}

// SettleAt returns when the running transition ends, or the zero time.
func (c *Controller) SettleAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.transitioningLocked() {
		return time.Time{}
	}
	return c.settleAt
}

// Chrome returns the chrome for the current slide.
func (c *Controller) Chrome() Chrome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Derive(c.current, c.reg.Count())
}

func (c *Controller) transitioningLocked() bool {
	return !c.settleAt.IsZero() && c.now().Before(c.settleAt)
}

// RequestShow moves to target. It returns false, changing nothing, when a
// transition is running. An unregistered target panics.
func (c *Controller) RequestShow(target slides.ID) bool {
	idx := c.reg.IndexOf(target)

	c.mu.Lock()
	if c.transitioningLocked() {
		c.mu.Unlock()
		c.log.Debug("navigation dropped during transition", zap.String("target", string(target)))
		return false
	}
	from, chrome := c.beginLocked(idx)
	c.mu.Unlock()

	c.finish(from, target, chrome)
	return true
}

// RequestRelative moves one slide in dir. Next stops at the ending slide
// and Previous never returns to the loading slide.
func (c *Controller) RequestRelative(dir Direction) bool {
	c.mu.Lock()
	if c.transitioningLocked() {
		c.mu.Unlock()
		c.log.Debug("navigation dropped during transition", zap.Stringer("direction", dir))
		return false
	}
	target, ok := c.relativeLocked(dir)
	if !ok {
		c.mu.Unlock()
		return false
	}
	from, chrome := c.beginLocked(c.reg.IndexOf(target))
	c.mu.Unlock()

	c.finish(from, target, chrome)
	return true
}

// beginLocked opens the transition window and moves to idx.
func (c *Controller) beginLocked(idx int) (slides.ID, Chrome) {
	from := c.reg.IDAt(c.current)
	c.current = idx
	if c.window > 0 {
		c.settleAt = c.now().Add(c.window)
	} else {
		c.settleAt = time.Time{}
	}
	return from, Derive(idx, c.reg.Count())
}

// finish runs the collaborators outside the lock so they may read state.
func (c *Controller) finish(from, to slides.ID, chrome Chrome) {
	c.log.Debug("slide transition",
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.Int("index", chrome.Index))

	if c.stage != nil {
		c.stage.Swap(from, to)
	}
	if c.updater != nil {
		c.updater.UpdateChrome(chrome)
	}
	if to == slides.Cover && c.audio != nil && c.audio.Enabled() {
		if err := c.audio.Play(); err != nil {
			c.log.Warn("background audio did not start", zap.Error(err))
		}
	}
}

func (c *Controller) relativeLocked(dir Direction) (slides.ID, bool) {
	next := c.current
	switch dir {
	case Next:
		next++
		if next > c.reg.LastIndex() {
			return "", false
		}
	case Previous:
		next--
		if next < c.reg.CoverIndex() {
			return "", false
		}
	default:
		return "", false
	}
	return c.reg.IDAt(next), true
}

// GoHome jumps to the cover.
func (c *Controller) GoHome() bool {
	return c.RequestShow(slides.Cover)
}

// ShowDot jumps to the slide a dot stands for.
func (c *Controller) ShowDot(d Dot) bool {
	return c.RequestShow(c.reg.IDAt(d.Index))
}
