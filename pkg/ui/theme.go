package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile is the terminal colour profile detected at start-up.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns hex on TrueColor terminals and no colour otherwise, so
// lower-depth terminals keep their own background.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns hex on ANSI256+ terminals and ANSI white below that.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme holds the deck's styles.
type Theme struct {
	Renderer *lipgloss.Renderer

	Brand   lipgloss.AdaptiveColor
	Accent  lipgloss.AdaptiveColor
	Subtext lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor

	Base      lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Button    lipgloss.Style
	DotActive lipgloss.Style
	DotIdle   lipgloss.Style
	PageNum   lipgloss.Style
	Modal     lipgloss.Style
	ErrorText lipgloss.Style
	GoodText  lipgloss.Style
	MutedText lipgloss.Style
	Counter   lipgloss.Style
	Status    lipgloss.Style
}

// DefaultTheme returns the report theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,
		Brand:    ColorBrand,
		Accent:   ColorAccent,
		Subtext:  ColorSubtext,
		Muted:    ColorMuted,
		Border:   ColorBorder,
	}

	t.Base = r.NewStyle().Foreground(ColorText)
	t.Title = r.NewStyle().Foreground(t.Brand).Bold(true)
	t.Subtitle = r.NewStyle().Foreground(t.Subtext).Italic(true)
	t.Button = r.NewStyle().Foreground(t.Brand).Bold(true)
	t.DotActive = r.NewStyle().Foreground(t.Accent)
	t.DotIdle = r.NewStyle().Foreground(t.Muted)
	t.PageNum = r.NewStyle().Foreground(t.Subtext)
	t.Modal = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Brand).
		Padding(1, 2)
	t.ErrorText = r.NewStyle().Foreground(ColorDanger).Bold(true)
	t.GoodText = r.NewStyle().Foreground(ColorSuccess)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.Counter = r.NewStyle().Foreground(t.Accent).Bold(true)
	t.Status = r.NewStyle().Foreground(ColorInfo)
	return t
}

// Department returns a bold style in a department's colour.
func (t Theme) Department(hex string) lipgloss.Style {
	return t.Renderer.NewStyle().Foreground(ThemeFg(hex)).Bold(true)
}

// TestTheme returns a theme for tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
