package ui

import "github.com/charmbracelet/lipgloss"

// Spacing in cells.
const (
	SpaceXS = 1
	SpaceSM = 2
)

// Palette. Light values keep WCAG AA contrast on white.
var (
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"}

	ColorBrand  = lipgloss.AdaptiveColor{Light: "#1E4FA1", Dark: "#6FA0FF"}
	ColorAccent = lipgloss.AdaptiveColor{Light: "#D63B3B", Dark: "#FF6B6B"}

	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
)

// Progress bar gradient endpoints.
const (
	GradientFrom = "#1E4FA1"
	GradientTo   = "#FF6B6B"
)
