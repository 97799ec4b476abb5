package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/vanderheijden86/annualreport/pkg/export"
	"github.com/vanderheijden86/annualreport/pkg/input"
	"github.com/vanderheijden86/annualreport/pkg/metrics"
	"github.com/vanderheijden86/annualreport/pkg/roster"
	"github.com/vanderheijden86/annualreport/pkg/share"
	"github.com/vanderheijden86/annualreport/pkg/slides"
	"github.com/vanderheijden86/annualreport/pkg/widgets"
)

const (
	homeLabel = "⌂ 首页"
	buttonGap = SpaceSM
	dotWidth  = 2
)

// button is a clickable key hint in the button bar.
type button struct {
	key   string
	label string
}

func (b button) text() string {
	return "[" + b.key + "] " + b.label
}

// View implements tea.Model.
func (m Model) View() string {
	defer metrics.Timer(metrics.SlideRender)()

	var body string
	switch {
	case m.modal != modalNone:
		body = m.overlay(m.modalView())
	case m.showHelp:
		body = m.overlay(m.help.FullHelpView(m.keys.FullHelp()))
	default:
		body = m.viewport.View()
	}

	rows := []string{m.headerView()}
	rows = append(rows, fitLines(body, m.viewport.Height)...)
	rows = append(rows, m.buttonsView(), m.statusView(), m.dotsView())
	return strings.Join(rows, "\n")
}

// refresh renders the slide body into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.bodyView())
}

func (m Model) overlay(content string) string {
	box := m.theme.Modal.MaxWidth(m.width).Render(content)
	return lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) title() string {
	if m.deck != nil && m.deck.Title != "" {
		return m.deck.Title
	}
	return share.DefaultTitle
}

func (m Model) musicLabel() string {
	if m.player != nil && m.player.Enabled() {
		return "♪ 音乐:开"
	}
	return "♪ 音乐:关"
}

func (m Model) headerView() string {
	left := ""
	if m.stage.chrome.NavVisible {
		left = homeLabel
	}
	right := ""
	if m.slide().Has(slides.ControlMusic) {
		right = m.musicLabel()
	}
	title := truncateWidth(m.title(), max(0, m.width-cellWidth(left)-cellWidth(right)-2), "…")
	gap := m.width - cellWidth(left) - cellWidth(title) - cellWidth(right)
	pad := max(1, gap/2)
	line := left + strings.Repeat(" ", pad) + m.theme.Title.Render(title)
	used := cellWidth(left) + pad + cellWidth(title)
	return line + strings.Repeat(" ", max(1, m.width-used-cellWidth(right))) + m.theme.Button.Render(right)
}

// buttons lists the key hints of the visible slide's controls.
func (m Model) buttons() []button {
	s := m.slide()
	var out []button
	switch {
	case s.ID == slides.Cover:
		out = append(out, button{"enter", "开启回忆"})
	case s.Has(slides.ControlSeasons):
		if m.season != "" {
			out = append(out, button{"esc", "返回"})
			break
		}
		for i, season := range widgets.Seasons {
			out = append(out, button{fmt.Sprintf("%d", i+1), widgets.SeasonTitle(season)})
		}
	case s.Has(slides.ControlSlider):
		out = append(out, button{"[", "上一张"}, button{"]", "下一张"})
	case s.Has(slides.ControlDepartments):
		if m.dept != nil {
			out = append(out, button{"esc", "返回"})
			break
		}
		for i, d := range roster.Departments {
			out = append(out, button{fmt.Sprintf("%d", i+1), d.Name})
		}
	case s.Has(slides.ControlTrainings):
		if m.gallery != nil {
			out = append(out, button{"esc", "返回"})
			break
		}
		out = append(out, button{"1", "思政培训"}, button{"2", "摄影培训"})
	}
	if s.Has(slides.ControlQuotes) {
		out = append(out, button{"n", "再来一句"})
	}
	if s.Has(slides.ControlFeedback) {
		out = append(out, button{"f", "留言"})
	}
	if s.Has(slides.ControlSubscribe) {
		out = append(out, button{"e", "订阅"})
	}
	if s.Has(slides.ControlPoster) {
		out = append(out, button{"p", "生成海报"})
	}
	if s.Has(slides.ControlShare) {
		out = append(out, button{"s", "分享"})
	}
	for _, a := range s.Actions {
		out = append(out, button{a.Key, a.Label})
	}
	return out
}

func (m Model) buttonsView() string {
	parts := make([]string, 0, len(m.buttons()))
	for _, b := range m.buttons() {
		parts = append(parts, m.theme.Button.Render(b.text()))
	}
	return strings.Join(parts, strings.Repeat(" ", buttonGap))
}

func (m Model) statusView() string {
	if m.status != "" {
		return m.theme.Status.Render(truncateWidth(m.status, m.width, "…"))
	}
	ch := m.stage.chrome
	if ch.NavVisible {
		page := m.theme.PageNum.Render(fmt.Sprintf(" %d / %d", ch.PageNumber, slides.ContentPages))
		return m.navBar.ViewAs(ch.Progress) + page
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m Model) dotsStart() int {
	return max(0, (m.width-len(m.stage.chrome.Dots)*dotWidth)/2)
}

func (m Model) dotsView() string {
	ch := m.stage.chrome
	if !ch.NavVisible || len(ch.Dots) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", m.dotsStart()))
	for _, d := range ch.Dots {
		if d.Active {
			b.WriteString(m.theme.DotActive.Render("●"))
		} else {
			b.WriteString(m.theme.DotIdle.Render("○"))
		}
		b.WriteString(" ")
	}
	return b.String()
}

// zones returns the clickable regions of the current frame, matching the
// rows View draws.
func (m Model) zones() input.Zones {
	var zs input.Zones
	ch := m.stage.chrome
	if ch.NavVisible {
		zs = append(zs, input.Zone{Name: "home", X0: 0, Y0: 0, X1: cellWidth(homeLabel), Y1: 1})
	}
	if m.slide().Has(slides.ControlMusic) {
		w := cellWidth(m.musicLabel())
		zs = append(zs, input.Zone{Name: "music", X0: m.width - w, Y0: 0, X1: m.width, Y1: 1})
	}

	row := m.height - 3
	x := 0
	for _, b := range m.buttons() {
		w := cellWidth(b.text())
		zs = append(zs, input.Zone{Name: "btn:" + b.key, X0: x, Y0: row, X1: x + w, Y1: row + 1})
		x += w + buttonGap
	}

	if ch.NavVisible {
		row = m.height - 1
		x0 := m.dotsStart()
		for i := range ch.Dots {
			zs = append(zs, input.Zone{
				Name: fmt.Sprintf("dot:%d", i),
				X0:   x0 + i*dotWidth,
				Y0:   row,
				X1:   x0 + (i+1)*dotWidth,
				Y1:   row + 1,
			})
		}
	}
	return zs
}

func (m Model) markdown(src string) string {
	if src == "" {
		return ""
	}
	if out, ok := m.mdCache[src]; ok {
		return out
	}
	if m.md == nil {
		return src
	}
	out, err := m.md.Render(src)
	if err != nil {
		m.log.Debug("markdown render failed", zap.Error(err))
		return src
	}
	out = strings.Trim(out, "\n")
	m.mdCache[src] = out
	return out
}

// bodyView renders the scrollable content of the visible slide.
func (m Model) bodyView() string {
	s := m.slide()
	if s.ID == slides.Loading {
		return m.loadingView(s)
	}

	var sections []string
	head := m.theme.Title.Render(s.Title)
	if s.Subtitle != "" {
		head += "\n" + m.theme.Subtitle.Render(s.Subtitle)
	}
	sections = append(sections, head)
	if body := m.markdown(s.Body); body != "" {
		sections = append(sections, body)
	}
	for _, c := range s.Controls {
		if v := m.controlView(s, c); v != "" {
			sections = append(sections, v)
		}
	}
	return strings.Join(sections, "\n\n")
}

func (m Model) loadingView(s slides.Slide) string {
	lines := []string{
		m.theme.Title.Render(s.Title),
		m.theme.Subtitle.Render(s.Subtitle),
		"",
		m.loadBar.ViewAs(m.loading.Fraction()),
		m.theme.Counter.Render(fmt.Sprintf("%d%%", m.loading.Percent())),
	}
	return strings.Join(lines, "\n")
}

func (m Model) controlView(s slides.Slide, c slides.Control) string {
	switch c {
	case slides.ControlIdentity:
		if !m.revealed {
			return m.theme.MutedText.Render("正在生成你的年度身份...")
		}
		return "你的年度身份  " + m.theme.Counter.Render(widgets.IdentityResult)

	case slides.ControlCounters:
		var lines []string
		counters := m.counters[s.ID]
		for i, sc := range s.Counters {
			value := "0"
			if i < len(counters) {
				value = counters[i].String()
			}
			lines = append(lines, fmt.Sprintf("%s  %s%s", padRight(sc.Label, 10), m.theme.Counter.Render(value), sc.Suffix))
		}
		return strings.Join(lines, "\n")

	case slides.ControlMonthly:
		chart := widgets.BarChart(widgets.MonthLabels, widgets.MonthlyPosts, max(10, m.width-20))
		return chart + "\n" + m.theme.MutedText.Render(widgets.Summarize(widgets.MonthlyPosts).String())

	case slides.ControlCalendar:
		return widgets.Calendar(widgets.MonthlyPosts, widgets.ActiveMonth)

	case slides.ControlHeatmap:
		return widgets.HeatChart(widgets.Engagement)

	case slides.ControlSeasons:
		if m.season == "" {
			return m.theme.MutedText.Render("按 1-4 选择季节")
		}
		return m.theme.Title.Render(widgets.SeasonTitle(m.season))

	case slides.ControlAvatars:
		var cells []string
		for _, a := range widgets.Avatars() {
			cells = append(cells, m.theme.Modal.Padding(0, SpaceXS).Render(a))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	case slides.ControlSlider:
		return m.sliderView()

	case slides.ControlDepartments:
		return m.departmentView()

	case slides.ControlTrainings:
		if m.gallery == nil {
			return "1. 学生骨干网络思政培训\n2. 政务新闻摄影培训"
		}
		lines := []string{m.theme.Title.Render(m.gallery.Title)}
		for _, p := range m.gallery.Photos {
			lines = append(lines, fmt.Sprintf("  ▣ %s  %s", p.Alt, m.theme.MutedText.Render(p.Path)))
		}
		return strings.Join(lines, "\n")

	case slides.ControlQuotes:
		if m.quote == "" {
			return ""
		}
		return m.theme.Subtitle.Render("“" + m.quote + "”")
	}
	return ""
}

func (m Model) sliderView() string {
	d := roster.Departments[m.slider.Current()]
	var dots strings.Builder
	for i := 0; i < m.slider.Len(); i++ {
		if i == m.slider.Current() {
			dots.WriteString(m.theme.DotActive.Render("●"))
		} else {
			dots.WriteString(m.theme.DotIdle.Render("○"))
		}
		dots.WriteString(" ")
	}
	return m.theme.Department(d.Color).Render(d.Name) + "\n" + dots.String()
}

func (m Model) departmentView() string {
	if m.dept == nil {
		return m.theme.MutedText.Render("按 1-5 查看部门成员")
	}
	d := roster.LookupDepartment(m.dept.key)
	head := m.theme.Department(d.Color).Render(d.Name)
	switch {
	case m.dept.loading:
		return head + "\n" + m.spinner.View() + " 加载中..."
	case m.dept.err != nil:
		return head + "\n" + m.theme.ErrorText.Render("数据加载失败，请稍后重试")
	case len(m.dept.members) == 0:
		return head + "\n" + m.theme.MutedText.Render("暂无成员数据")
	}
	lines := []string{head + "  " + m.theme.MutedText.Render(roster.HeadCount(len(m.dept.members)))}
	for _, mem := range m.dept.members {
		lines = append(lines, fmt.Sprintf("[%s] %s  %s  %s",
			mem.Initial(),
			padRight(mem.DisplayName(), 8),
			padRight(mem.MajorName(), 12),
			m.theme.MutedText.Render(mem.DisplayRole())))
	}
	return strings.Join(lines, "\n")
}

func (m Model) modalView() string {
	switch m.modal {
	case modalNotice:
		return m.notice + "\n\n" + m.theme.MutedText.Render("[enter] 确定")

	case modalFeedback:
		parts := []string{m.theme.Title.Render("给我们留言"), m.feedback.View()}
		if m.formErr != "" {
			parts = append(parts, m.theme.ErrorText.Render(m.formErr))
		}
		parts = append(parts, m.theme.MutedText.Render("[ctrl+s] 提交  [esc] 取消"))
		return strings.Join(parts, "\n")

	case modalSubscribe:
		parts := []string{m.theme.Title.Render("订阅更新"), m.email.View()}
		if m.formErr != "" {
			parts = append(parts, m.theme.ErrorText.Render(m.formErr))
		}
		parts = append(parts, m.theme.MutedText.Render("[enter] 订阅  [esc] 取消"))
		return strings.Join(parts, "\n")

	case modalPoster:
		p := export.DefaultPoster(m.title(), m.now())
		lines := []string{
			m.theme.Title.Render(p.Title),
			"",
			m.theme.MutedText.Render("我的年度身份"),
			m.theme.Counter.Render(p.Identity),
			"",
		}
		for _, st := range p.Stats(false) {
			lines = append(lines, fmt.Sprintf("%s  %s", st.Label, m.theme.Counter.Render(st.Value)))
		}
		lines = append(lines, "", m.theme.MutedText.Render(p.DateString()), "",
			m.theme.MutedText.Render("[d] 保存海报  [s] 分享  [esc] 关闭"))
		return strings.Join(lines, "\n")
	}
	return ""
}
