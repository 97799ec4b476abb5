package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/vanderheijden86/annualreport/pkg/forms"
	"github.com/vanderheijden86/annualreport/pkg/input"
	"github.com/vanderheijden86/annualreport/pkg/roster"
	"github.com/vanderheijden86/annualreport/pkg/share"
	"github.com/vanderheijden86/annualreport/pkg/slides"
	"github.com/vanderheijden86/annualreport/pkg/widgets"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.refresh()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case loadingTickMsg:
		if m.Current() != slides.Loading {
			return m, nil
		}
		if m.loading.Tick() {
			return m, tea.Tick(widgets.CoverDelay, func(time.Time) tea.Msg { return coverMsg{} })
		}
		return m, loadingTick()

	case coverMsg:
		if m.Current() != slides.Loading {
			return m, nil
		}
		return m, m.navigate(input.ShowIntent(slides.Cover))

	case settledMsg:
		return m, nil

	case carouselTickMsg:
		m.slider.Next()
		return m, tea.Tick(widgets.CarouselInterval, func(time.Time) tea.Msg { return carouselTickMsg{} })

	case identityMsg:
		m.revealed = true
		return m, nil

	case counterTickMsg:
		running := false
		for _, c := range m.counters[msg.slide] {
			if c.Step() {
				running = true
			}
		}
		if running {
			return m, counterTick(msg.slide)
		}
		return m, nil

	case membersMsg:
		if m.dept == nil || m.dept.key != msg.dept {
			return m, nil
		}
		m.dept.loading = false
		m.dept.err = msg.err
		m.dept.members = msg.members
		if msg.err != nil {
			m.log.Warn("department members unavailable", zap.String("dept", msg.dept), zap.Error(msg.err))
		}
		return m, nil

	case spinner.TickMsg:
		if m.dept == nil || !m.dept.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case posterSavedMsg:
		if msg.err != nil {
			m.status = "海报保存失败：" + msg.err.Error()
			m.log.Warn("poster export failed", zap.Error(msg.err))
			return m, nil
		}
		m.modal = modalNone
		m.status = "海报已保存到 " + msg.path
		return m, nil

	case deckChangedMsg:
		return m, reloadDeck(m.deckPath, m.reg)

	case deckReloadedMsg:
		var cmd tea.Cmd
		if m.watch != nil {
			cmd = waitForDeckChange(m.watch)
		}
		if msg.err != nil {
			m.status = "内容重载失败：" + msg.err.Error()
			m.log.Warn("deck reload rejected", zap.Error(msg.err))
			return m, cmd
		}
		m.deck = msg.deck
		m.counters = buildCounters(m.deck)
		m.mdCache = make(map[string]string)
		m.status = "内容已更新"
		m.log.Info("deck reloaded", zap.String("path", m.deckPath))
		return m, tea.Batch(cmd, m.startCounters(m.Current()))
	}

	// Cursor blink and other component messages.
	switch m.modal {
	case modalFeedback:
		var cmd tea.Cmd
		m.feedback, cmd = m.feedback.Update(msg)
		return m, cmd
	case modalSubscribe:
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(msg)
		return m, cmd
	}
	return m, nil
}

// navigate dispatches in to the controller and runs the enter hooks of
// whatever slide it revealed.
func (m *Model) navigate(in input.Intent) tea.Cmd {
	if !input.Dispatch(m.ctrl, in) {
		return nil
	}
	return m.afterTransition()
}

func (m *Model) afterTransition() tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.stage.drain() {
		cmds = append(cmds, m.enter(id))
	}
	m.viewport.GotoTop()
	m.status = ""

	if at := m.ctrl.SettleAt(); !at.IsZero() {
		wait := max(at.Sub(m.now()), 0)
		cmds = append(cmds, tea.Tick(wait, func(time.Time) tea.Msg { return settledMsg{} }))
	}
	return tea.Batch(cmds...)
}

// enter resets per-slide detail views and starts the slide's animations.
func (m *Model) enter(id slides.ID) tea.Cmd {
	m.season = ""
	m.dept = nil
	m.gallery = nil
	if id == slides.Page(10) && m.quote == "" {
		m.quote = widgets.RandomQuote(m.rng)
	}
	return m.startCounters(id)
}

func (m *Model) startCounters(id slides.ID) tea.Cmd {
	started := false
	for _, c := range m.counters[id] {
		if c.Start() {
			started = true
		}
	}
	if !started {
		return nil
	}
	return counterTick(id)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		return m, tea.Quit
	}
	if m.modal != modalNone {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case m.showHelp && key.Matches(msg, m.keys.Back):
		m.showHelp = false
		return m, nil
	}

	if cmd, ok := m.slideKey(msg); ok {
		return m, cmd
	}

	if in, handled := input.KeyIntent(k, m.ctrl.State()); handled {
		return m, m.navigate(in)
	}

	switch k {
	case "ctrl+d":
		m.viewport.LineDown(max(1, m.viewport.Height/2))
	case "ctrl+u":
		m.viewport.LineUp(max(1, m.viewport.Height/2))
	case "esc", "backspace":
		m.season = ""
		m.dept = nil
		m.gallery = nil
	}
	return m, nil
}

// slideKey handles the keys of the controls hosted by the visible slide.
func (m *Model) slideKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	k := msg.String()
	s := m.slide()
	id := m.Current()

	switch {
	case id == slides.Cover:
		switch {
		case k == "enter":
			return m.navigate(input.CoverTap(false)), true
		case key.Matches(msg, m.keys.Music):
			m.toggleMusic()
			return nil, true
		}

	case s.Has(slides.ControlSeasons) && m.season == "":
		if i, ok := digit(k, len(widgets.Seasons)); ok {
			m.season = widgets.Seasons[i]
			return nil, true
		}

	case s.Has(slides.ControlSlider):
		switch {
		case key.Matches(msg, m.keys.SlidePrev):
			m.slider.Prev()
			return nil, true
		case key.Matches(msg, m.keys.SlideNext):
			m.slider.Next()
			return nil, true
		}
		if i, ok := digit(k, m.slider.Len()); ok {
			m.slider.Go(i)
			return nil, true
		}

	case s.Has(slides.ControlDepartments) && m.dept == nil:
		if i, ok := digit(k, len(roster.Departments)); ok {
			return m.openDepartment(roster.Departments[i].Key), true
		}

	case s.Has(slides.ControlTrainings) && m.gallery == nil:
		if k == "1" || k == "2" {
			g := widgets.GalleryFor(k)
			m.gallery = &g
			return nil, true
		}
	}

	if s.Has(slides.ControlQuotes) && key.Matches(msg, m.keys.Quote) {
		m.quote = widgets.RandomQuote(m.rng)
		return nil, true
	}
	if s.Has(slides.ControlFeedback) && key.Matches(msg, m.keys.Feedback) {
		m.openModal(modalFeedback)
		return m.feedback.Focus(), true
	}
	if s.Has(slides.ControlSubscribe) && key.Matches(msg, m.keys.Subscribe) {
		m.openModal(modalSubscribe)
		return m.email.Focus(), true
	}
	if s.Has(slides.ControlPoster) && key.Matches(msg, m.keys.Poster) {
		m.openModal(modalPoster)
		return nil, true
	}
	if s.Has(slides.ControlShare) && key.Matches(msg, m.keys.Share) {
		m.share()
		return nil, true
	}
	for _, a := range s.Actions {
		if a.Key == k {
			m.showNotice(a.Message)
			return nil, true
		}
	}
	return nil, false
}

// digit maps "1".."n" to 0..n-1.
func digit(k string, n int) (int, bool) {
	i, err := strconv.Atoi(k)
	if err != nil || len(k) != 1 || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}

func (m *Model) openDepartment(dept string) tea.Cmd {
	m.dept = &deptView{key: dept, loading: true}
	if r, ok := m.cachedRoster(); ok {
		m.dept.loading = false
		m.dept.members = r.Members(dept)
		return nil
	}
	return tea.Batch(m.loadMembers(dept), m.spinner.Tick)
}

func (m Model) cachedRoster() (roster.Roster, bool) {
	if m.loader == nil {
		return nil, false
	}
	return m.loader.Cached()
}

func (m *Model) toggleMusic() {
	if m.player == nil {
		m.status = "未配置背景音乐"
		return
	}
	on, err := m.player.Toggle()
	if err != nil {
		m.log.Warn("background audio toggle failed", zap.Error(err))
	}
	if on {
		m.status = "音乐：开"
	} else {
		m.status = "音乐：关"
	}
}

func (m *Model) share() {
	if m.sharer == nil {
		m.showNotice(share.Fallback)
		return
	}
	res := m.sharer.Share()
	m.showNotice(res.Message)
}

func (m *Model) showNotice(text string) {
	m.notice = text
	m.openModal(modalNotice)
}

func (m *Model) openModal(kind modalKind) {
	m.modal = kind
	m.formErr = ""
}

func (m *Model) closeModal() {
	m.modal = modalNone
	m.formErr = ""
	m.feedback.Blur()
	m.email.Blur()
}

func (m Model) handleModalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := msg.String()
	switch m.modal {
	case modalNotice:
		switch k {
		case "esc", "enter", " ", "q":
			m.closeModal()
		}
		return m, nil

	case modalPoster:
		switch {
		case k == "esc" || k == "q":
			m.closeModal()
			return m, nil
		case key.Matches(msg, m.keys.Save):
			m.status = "正在保存海报..."
			return m, m.savePoster()
		case key.Matches(msg, m.keys.Share):
			m.closeModal()
			m.share()
			return m, nil
		}
		return m, nil

	case modalFeedback:
		switch {
		case k == "esc":
			m.closeModal()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			receipt, err := forms.SubmitFeedback(m.feedback.Value(), m.now())
			if err != nil {
				m.formErr = err.Error()
				return m, nil
			}
			m.log.Info("feedback submitted", zap.String("receipt", receipt.ID))
			m.feedback.Reset()
			m.closeModal()
			m.showNotice(receipt.Message)
			return m, nil
		}
		var cmd tea.Cmd
		m.feedback, cmd = m.feedback.Update(msg)
		return m, cmd

	case modalSubscribe:
		switch k {
		case "esc":
			m.closeModal()
			return m, nil
		case "enter":
			receipt, err := forms.Subscribe(strings.TrimSpace(m.email.Value()), m.now())
			if err != nil {
				m.formErr = err.Error()
				return m, nil
			}
			m.log.Info("subscription accepted", zap.String("receipt", receipt.ID))
			m.email.Reset()
			m.closeModal()
			m.showNotice(receipt.Message)
			return m, nil
		}
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.modal != modalNone {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		in, _ := input.KeyIntent("down", m.ctrl.State())
		return m, m.navigate(in)
	case tea.MouseButtonWheelUp:
		in, _ := input.KeyIntent("up", m.ctrl.State())
		return m, m.navigate(in)
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.gesture.BeginCell(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		res := m.gesture.EndCell(msg.X, msg.Y, m.ctrl.State())
		if res.Tap {
			return m.handleTap(msg.X, msg.Y)
		}
		return m, m.navigate(res.Intent)
	}
	return m, nil
}

// handleTap resolves a click against the zones of the current frame.
func (m Model) handleTap(col, row int) (Model, tea.Cmd) {
	zone, hit := m.zones().Hit(col, row)
	name := zone.Name
	switch {
	case hit && name == "music":
		m.toggleMusic()
		return m, nil
	case hit && name == "home":
		return m, m.navigate(input.HomeIntent)
	case hit && strings.HasPrefix(name, "dot:"):
		i, err := strconv.Atoi(strings.TrimPrefix(name, "dot:"))
		dots := m.stage.chrome.Dots
		if err != nil || i < 0 || i >= len(dots) {
			return m, nil
		}
		return m, m.navigate(input.DotTap(m.reg, dots[i]))
	case hit && strings.HasPrefix(name, "btn:"):
		return m.handleKey(keyMsgFor(strings.TrimPrefix(name, "btn:")))
	}
	if m.Current() == slides.Cover {
		return m, m.navigate(input.CoverTap(false))
	}
	return m, nil
}

// keyMsgFor builds the key press a button stands for.
func keyMsgFor(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
