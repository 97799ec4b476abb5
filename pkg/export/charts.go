package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ajstarks/svgo"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/vanderheijden86/annualreport/pkg/metrics"
	"github.com/vanderheijden86/annualreport/pkg/widgets"
)

// Chart kinds.
const (
	ChartMonthly    = "monthly"
	ChartEngagement = "engagement"
)

// ChartOptions controls chart export.
type ChartOptions struct {
	Kind   string // monthly or engagement
	Path   string
	Format string // svg or png; engagement supports svg only
}

// SaveChart writes the requested chart and returns the path written.
func SaveChart(opts ChartOptions) (string, error) {
	defer metrics.Timer(metrics.ChartExport)()

	if opts.Kind != ChartMonthly && opts.Kind != ChartEngagement {
		return "", fmt.Errorf("unknown chart %q (want %s or %s)", opts.Kind, ChartMonthly, ChartEngagement)
	}
	if opts.Path == "" {
		opts.Path = opts.Kind
	}
	format, path, err := resolveFormat(opts.Format, opts.Path)
	if err != nil {
		return "", err
	}
	if opts.Kind == ChartEngagement && format != "svg" {
		return "", fmt.Errorf("%w: engagement chart is svg only", ErrUnsupportedFormat)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create parent dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	switch opts.Kind {
	case ChartMonthly:
		err = WriteMonthlyChart(f, format, widgets.MonthlyPosts)
	case ChartEngagement:
		err = WriteEngagementSVG(f, widgets.Engagement)
	}
	if err != nil {
		return "", err
	}
	return path, f.Close()
}

// WriteMonthlyChart renders the posts-per-month bar chart.
func WriteMonthlyChart(w io.Writer, format string, values []float64) error {
	bars := make([]chart.Value, len(values))
	for i, v := range values {
		// Month numbers: the bundled chart font has no CJK glyphs.
		bars[i] = chart.Value{
			Value: v,
			Label: strconv.Itoa(i + 1),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("1E4FA1"),
				StrokeColor: drawing.ColorFromHex("1E4FA1"),
			},
		}
	}
	bc := chart.BarChart{
		Title:      "Posts per month",
		Width:      720,
		Height:     400,
		BarWidth:   36,
		BarSpacing: 16,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Bars: bars,
	}
	rp := chart.PNG
	if format == "svg" {
		rp = chart.SVG
	}
	if err := bc.Render(rp, w); err != nil {
		return fmt.Errorf("render monthly chart: %w", err)
	}
	return nil
}

// WriteEngagementSVG renders the interaction bubble chart.
func WriteEngagementSVG(w io.Writer, points []widgets.Bubble) error {
	const (
		width, height = 720, 400
		left, bottom  = 50, 40
		top, right    = 20, 20
	)
	plotW := width - left - right
	plotH := height - top - bottom
	xAt := func(x float64) int { return left + int(x/13*float64(plotW)) }
	yAt := func(y float64) int { return top + plotH - int(y/10*float64(plotH)) }

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#ffffff")
	canvas.Line(left, top+plotH, left+plotW, top+plotH, "stroke:#999999")
	canvas.Line(left, top, left, top+plotH, "stroke:#999999")

	for level := 0; level <= 10; level += 2 {
		y := yAt(float64(level))
		canvas.Line(left, y, left+plotW, y, "stroke:#000000;stroke-opacity:0.05")
		canvas.Text(left-8, y+4, fmt.Sprintf("%d级", level), "font-size:11px;text-anchor:end;fill:#666666")
	}
	for i, label := range widgets.MonthLabels {
		canvas.Text(xAt(float64(i+1)), top+plotH+18, label, "font-size:11px;text-anchor:middle;fill:#666666")
	}
	for _, p := range points {
		canvas.Circle(xAt(p.X), yAt(p.Y), int(p.R/2),
			"fill:#FF6B6B;fill-opacity:0.7;stroke:#FF5252;stroke-width:1")
	}
	canvas.End()
	return nil
}
