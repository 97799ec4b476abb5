// Package ui is the full-screen terminal presentation of the annual
// report. It owns no navigation state: every slide change goes through
// nav.Controller, and the model renders what the controller's stage and
// chrome callbacks report.
package ui

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/vanderheijden86/annualreport/pkg/input"
	"github.com/vanderheijden86/annualreport/pkg/nav"
	"github.com/vanderheijden86/annualreport/pkg/roster"
	"github.com/vanderheijden86/annualreport/pkg/share"
	"github.com/vanderheijden86/annualreport/pkg/slides"
	"github.com/vanderheijden86/annualreport/pkg/watcher"
	"github.com/vanderheijden86/annualreport/pkg/widgets"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header line plus the button, status and dot rows
	chromeRows = 4
)

// MusicPlayer is the background audio the cover controls.
type MusicPlayer interface {
	nav.Audio
	Playing() bool
	Toggle() (bool, error)
}

// Options wires a Model to its collaborators. Only Deck is required.
type Options struct {
	Deck      *slides.Deck
	Registry  *slides.Registry
	Loader    *roster.Loader
	Player    MusicPlayer
	Sharer    *share.Sharer
	Watcher   *watcher.Watcher
	DeckPath  string
	PosterDir string
	FontPath  string
	Logger    *zap.Logger
	Now       func() time.Time
	Rand      *rand.Rand
}

type modalKind int

const (
	modalNone modalKind = iota
	modalNotice
	modalFeedback
	modalSubscribe
	modalPoster
)

// deptView is the department detail panel.
type deptView struct {
	key     string
	loading bool
	err     error
	members []roster.Member
}

// Model is the bubbletea model.
type Model struct {
	deck  *slides.Deck
	reg   *slides.Registry
	ctrl  *nav.Controller
	stage *stage
	theme Theme
	keys  keyMap
	help  help.Model

	loader    *roster.Loader
	player    MusicPlayer
	sharer    *share.Sharer
	watch     *watcher.Watcher
	deckPath  string
	posterDir string
	fontPath  string
	log       *zap.Logger
	now       func() time.Time
	rng       *rand.Rand
	started   time.Time

	width, height int
	showHelp      bool

	gesture  *input.Gesture
	loading  *widgets.Loading
	loadBar  progress.Model
	navBar   progress.Model
	counters map[slides.ID][]*widgets.Counter
	slider   *widgets.Carousel
	revealed bool
	season   string
	gallery  *widgets.Gallery
	dept     *deptView
	quote    string
	spinner  spinner.Model

	viewport viewport.Model
	md       *glamour.TermRenderer
	mdCache  map[string]string

	modal    modalKind
	notice   string
	formErr  string
	feedback textarea.Model
	email    textinput.Model
	status   string
}

// NewModel builds the model on the loading slide.
func NewModel(opts Options) Model {
	reg := opts.Registry
	if reg == nil {
		reg = slides.DefaultRegistry()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(now().UnixNano()), 0x2025))
	}

	st := newStage(reg)
	navOpts := []nav.Option{
		nav.WithStage(st),
		nav.WithUpdater(st),
		nav.WithLogger(log.Named("nav")),
		nav.WithClock(now),
	}
	if opts.Player != nil {
		navOpts = append(navOpts, nav.WithAudio(opts.Player))
	}

	ta := textarea.New()
	ta.Placeholder = "写下你的鼓励和建议..."
	ta.SetWidth(50)
	ta.SetHeight(4)
	ta.CharLimit = 500

	ti := textinput.New()
	ti.Placeholder = "you@example.com"
	ti.CharLimit = 120
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		deck:      opts.Deck,
		reg:       reg,
		ctrl:      nav.New(reg, navOpts...),
		stage:     st,
		theme:     DefaultTheme(lipgloss.DefaultRenderer()),
		keys:      defaultKeyMap(),
		help:      help.New(),
		loader:    opts.Loader,
		player:    opts.Player,
		sharer:    opts.Sharer,
		watch:     opts.Watcher,
		deckPath:  opts.DeckPath,
		posterDir: opts.PosterDir,
		fontPath:  opts.FontPath,
		log:       log,
		now:       now,
		rng:       rng,
		started:   now(),
		width:     defaultWidth,
		height:    defaultHeight,
		gesture:   input.NewGesture(input.SwipeThreshold),
		loading:   widgets.NewLoading(rng),
		loadBar:   progress.New(progress.WithGradient(GradientFrom, GradientTo), progress.WithoutPercentage()),
		navBar:    progress.New(progress.WithSolidFill(GradientFrom), progress.WithoutPercentage()),
		slider:    widgets.NewCarousel(len(roster.Departments)),
		spinner:   sp,
		viewport:  viewport.New(defaultWidth, defaultHeight-chromeRows),
		mdCache:   make(map[string]string),
		feedback:  ta,
		email:     ti,
	}
	if m.sharer == nil && m.deck != nil {
		m.sharer = share.New(m.deck.ShareURL, share.WithLogger(log.Named("share")))
	}
	m.counters = buildCounters(m.deck)
	m.resize(defaultWidth, defaultHeight)
	return m
}

func buildCounters(d *slides.Deck) map[slides.ID][]*widgets.Counter {
	out := make(map[slides.ID][]*widgets.Counter)
	if d == nil {
		return out
	}
	for _, s := range d.Slides {
		for _, c := range s.Counters {
			out[s.ID] = append(out[s.ID], widgets.NewCounter(c.Target))
		}
	}
	return out
}

// Controller exposes the navigation controller.
func (m Model) Controller() *nav.Controller { return m.ctrl }

// Init starts the loading animation and the background timers.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadingTick(),
		tea.Tick(widgets.CarouselInterval, func(time.Time) tea.Msg { return carouselTickMsg{} }),
		tea.Tick(widgets.IdentityDelay+widgets.IdentityHold, func(time.Time) tea.Msg { return identityMsg{} }),
	}
	if m.loader != nil {
		cmds = append(cmds, m.preloadRoster())
	}
	if m.watch != nil {
		cmds = append(cmds, waitForDeckChange(m.watch))
	}
	return tea.Batch(cmds...)
}

func loadingTick() tea.Cmd {
	return tea.Tick(widgets.LoadingInterval, func(time.Time) tea.Msg { return loadingTickMsg{} })
}

func counterTick(id slides.ID) tea.Cmd {
	return tea.Tick(widgets.CounterInterval, func(time.Time) tea.Msg { return counterTickMsg{slide: id} })
}

// preloadRoster warms the roster cache. Failures are logged by the loader
// and the department view retries on first use.
func (m Model) preloadRoster() tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		loader.Preload(context.Background())
		return nil
	}
}

// loadMembers fetches one department's members.
func (m Model) loadMembers(dept string) tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		if loader == nil {
			return membersMsg{dept: dept}
		}
		members, err := loader.Members(context.Background(), dept)
		return membersMsg{dept: dept, members: members, err: err}
	}
}

func (m *Model) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	m.width, m.height = w, h
	m.viewport.Width = w
	m.viewport.Height = max(1, h-chromeRows)
	m.loadBar.Width = max(10, min(60, w-20))
	m.navBar.Width = max(10, w-30)
	m.help.Width = w
	m.feedback.SetWidth(min(50, max(20, w-12)))

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, w-4)),
	)
	if err != nil {
		m.log.Warn("markdown renderer unavailable", zap.Error(err))
		m.md = nil
	} else {
		m.md = r
	}
	m.mdCache = make(map[string]string)
}

// Current returns the visible slide.
func (m Model) Current() slides.ID { return m.stage.visible }

// slide returns the deck entry of the visible slide.
func (m Model) slide() slides.Slide {
	if m.deck == nil {
		return slides.Slide{ID: m.Current()}
	}
	s, ok := m.deck.Slide(m.Current())
	if !ok {
		return slides.Slide{ID: m.Current()}
	}
	return s
}
