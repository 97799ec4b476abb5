package widgets

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MonthLabels are the x-axis labels of the yearly charts.
var MonthLabels = []string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"}

// MonthlyPosts is the number of posts published per month.
var MonthlyPosts = []float64{6, 7, 4, 6, 4, 4, 4, 4, 8, 3, 7, 8}

// ActiveMonth is the month highlighted on the calendar (April).
const ActiveMonth = 3

// Bubble is one point of the interaction heat chart. X is the month
// (1-12), Y the engagement level (0-10) and R the bubble radius.
type Bubble struct {
	X, Y, R float64
}

// Engagement is the interaction heat data.
var Engagement = []Bubble{
	{1, 5, 15}, {2, 6, 20}, {3, 7, 25}, {4, 9, 35},
	{5, 6, 20}, {6, 8, 30}, {7, 5, 15}, {8, 4, 10},
	{9, 8, 30}, {10, 5, 15}, {11, 6, 20}, {12, 7, 25},
}

// Summary describes a monthly series.
type Summary struct {
	Total   float64
	Mean    float64
	StdDev  float64
	Peak    float64
	PeakIdx int
}

// Summarize computes totals and spread for values.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{PeakIdx: -1}
	}
	idx := floats.MaxIdx(values)
	return Summary{
		Total:   floats.Sum(values),
		Mean:    stat.Mean(values, nil),
		StdDev:  stat.StdDev(values, nil),
		Peak:    values[idx],
		PeakIdx: idx,
	}
}

// String renders the summary as one line of text.
func (s Summary) String() string {
	if s.PeakIdx < 0 {
		return "暂无数据"
	}
	label := fmt.Sprintf("%d", s.PeakIdx+1)
	if s.PeakIdx < len(MonthLabels) {
		label = MonthLabels[s.PeakIdx]
	}
	return fmt.Sprintf("全年 %.0f 篇 · 月均 %.1f · 峰值 %s (%.0f)", s.Total, s.Mean, label, s.Peak)
}

// BarChart draws one horizontal bar per label, scaled so the largest
// value spans width cells.
func BarChart(labels []string, values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	peak := floats.Max(values)
	labelW := 0
	for _, l := range labels {
		labelW = max(labelW, runewidth.StringWidth(l))
	}

	var b strings.Builder
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		n := 0
		if peak > 0 {
			n = int(v / peak * float64(width))
		}
		fmt.Fprintf(&b, "%s %s %g\n", runewidth.FillRight(label, labelW), strings.Repeat("█", n), v)
	}
	return strings.TrimRight(b.String(), "\n")
}

var bubbleGlyphs = []string{"·", "∘", "○", "◎", "●"}

// BubbleGlyph maps a radius to a glyph, larger radius to heavier glyph.
func BubbleGlyph(r float64, maxR float64) string {
	if maxR <= 0 {
		return bubbleGlyphs[0]
	}
	i := int(r / maxR * float64(len(bubbleGlyphs)-1))
	if i < 0 {
		i = 0
	}
	if i >= len(bubbleGlyphs) {
		i = len(bubbleGlyphs) - 1
	}
	return bubbleGlyphs[i]
}

// HeatChart draws bubbles on a 0-10 level grid, one column per month.
func HeatChart(points []Bubble) string {
	if len(points) == 0 {
		return ""
	}
	maxR := 0.0
	for _, p := range points {
		if p.R > maxR {
			maxR = p.R
		}
	}
	const levels = 10
	var b strings.Builder
	for level := levels; level >= 0; level-- {
		fmt.Fprintf(&b, "%2d级│", level)
		for month := 1; month <= len(MonthLabels); month++ {
			cell := "   "
			for _, p := range points {
				if int(p.X) == month && int(p.Y) == level {
					cell = " " + BubbleGlyph(p.R, maxR) + " "
				}
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	b.WriteString("    └")
	b.WriteString(strings.Repeat("───", len(MonthLabels)))
	b.WriteString("\n     ")
	for i := range MonthLabels {
		b.WriteString(runewidth.FillRight(fmt.Sprintf("%d", i+1), 3))
	}
	return b.String()
}

// Calendar lays out the twelve months with their post counts in rows of
// four, marking the active month.
func Calendar(values []float64, active int) string {
	var b strings.Builder
	for i, label := range MonthLabels {
		count := 0.0
		if i < len(values) {
			count = values[i]
		}
		cell := fmt.Sprintf("%s %g", label, count)
		if i == active {
			cell = "[" + cell + "]"
		} else {
			cell = " " + cell + " "
		}
		b.WriteString(runewidth.FillRight(cell, 10))
		if i%4 == 3 {
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n ")
}
