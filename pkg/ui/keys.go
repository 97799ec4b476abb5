package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Home      key.Binding
	Music     key.Binding
	Back      key.Binding
	Scroll    key.Binding
	Help      key.Binding
	Quit      key.Binding
	Submit    key.Binding
	Share     key.Binding
	Poster    key.Binding
	Save      key.Binding
	Feedback  key.Binding
	Subscribe key.Binding
	Quote     key.Binding
	SlidePrev key.Binding
	SlideNext key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("down", "right", "pgdown", " "), key.WithHelp("↓/→", "下一页")),
		Prev:      key.NewBinding(key.WithKeys("up", "left", "pgup"), key.WithHelp("↑/←", "上一页")),
		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "首页")),
		Music:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "音乐")),
		Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "返回")),
		Scroll:    key.NewBinding(key.WithKeys("ctrl+d", "ctrl+u"), key.WithHelp("ctrl+d/u", "滚动")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "帮助")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "退出")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "提交")),
		Share:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "分享")),
		Poster:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "海报")),
		Save:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "保存海报")),
		Feedback:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "留言")),
		Subscribe: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "订阅")),
		Quote:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "再来一句")),
		SlidePrev: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "上一张")),
		SlideNext: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "下一张")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Music, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Home, k.Back, k.Scroll},
		{k.Music, k.Share, k.Poster, k.Feedback, k.Subscribe},
		{k.Quote, k.SlidePrev, k.SlideNext, k.Help, k.Quit},
	}
}
