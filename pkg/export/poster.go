package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/annualreport/pkg/metrics"
	"github.com/vanderheijden86/annualreport/pkg/widgets"
)

// ErrUnsupportedFormat is returned for output formats other than svg and png.
var ErrUnsupportedFormat = errors.New("unsupported format (want svg or png)")

// DefaultPosterFile is the suggested poster file name.
const DefaultPosterFile = "重医年度报告海报.png"

const (
	posterW = 540
	posterH = 960
)

var (
	colorPosterBG     = color.RGBA{30, 79, 161, 255}
	colorPosterCard   = color.RGBA{255, 255, 255, 235}
	colorPosterText   = color.RGBA{33, 37, 41, 255}
	colorPosterSubtle = color.RGBA{108, 117, 125, 255}
	colorPosterAccent = color.RGBA{255, 107, 107, 255}
)

// Poster is the shareable summary card.
type Poster struct {
	Title    string
	Identity string
	Views    int
	Likes    int
	Shares   int
	Date     time.Time
}

// DefaultPoster returns the poster with the report's figures dated now.
func DefaultPoster(title string, now time.Time) Poster {
	return Poster{
		Title:    title,
		Identity: widgets.IdentityResult,
		Views:    3456,
		Likes:    189,
		Shares:   87,
		Date:     now,
	}
}

// DateString formats the date the way the report shows it, e.g. 2025/12/31.
func (p Poster) DateString() string {
	return p.Date.Format("2006/1/2")
}

// Stat is one labelled figure on the poster.
type Stat struct {
	Label string
	Value string
}

// Stats returns the poster's figures. ascii selects labels a bitmap font
// can draw.
func (p Poster) Stats(ascii bool) []Stat {
	if ascii {
		return []Stat{
			{"Views", widgets.FormatThousands(p.Views)},
			{"Likes", widgets.FormatThousands(p.Likes)},
			{"Shares", widgets.FormatThousands(p.Shares)},
		}
	}
	return []Stat{
		{"阅读", widgets.FormatThousands(p.Views)},
		{"点赞", widgets.FormatThousands(p.Likes)},
		{"分享", widgets.FormatThousands(p.Shares)},
	}
}

// PosterOptions controls poster export.
type PosterOptions struct {
	Path     string // format inferred from the extension when Format is empty
	Format   string // svg or png
	FontPath string // TTF used for PNG text; empty falls back to a bitmap font
}

// resolveFormat infers the format from the path, defaulting to png.
func resolveFormat(format, path string) (string, string, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".svg":
			format = "svg"
		case ".png", "":
			format = "png"
		default:
			return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
		}
		if path != "" && filepath.Ext(path) == "" {
			path += "." + format
		}
	}
	if format != "svg" && format != "png" {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return format, path, nil
}

// SavePoster writes the poster and returns the path written.
func SavePoster(p Poster, opts PosterOptions) (string, error) {
	defer metrics.Timer(metrics.PosterExport)()

	if opts.Path == "" {
		opts.Path = DefaultPosterFile
	}
	format, path, err := resolveFormat(opts.Format, opts.Path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create parent dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	switch format {
	case "svg":
		err = WritePosterSVG(f, p)
	default:
		err = WritePosterPNG(f, p, opts.FontPath)
	}
	if err != nil {
		return "", err
	}
	return path, f.Close()
}

// WritePosterSVG renders the poster as SVG.
func WritePosterSVG(w io.Writer, p Poster) error {
	canvas := svg.New(w)
	canvas.Start(posterW, posterH)
	canvas.Rect(0, 0, posterW, posterH, "fill:"+css(colorPosterBG))
	canvas.Roundrect(40, 120, posterW-80, posterH-240, 24, 24, "fill:"+css(colorPosterCard))

	canvas.Text(posterW/2, 80, p.Title, "fill:#ffffff;font-size:28px;font-weight:bold;text-anchor:middle")
	canvas.Text(posterW/2, 220, "我的年度身份", fmt.Sprintf("fill:%s;font-size:18px;text-anchor:middle", css(colorPosterSubtle)))
	canvas.Text(posterW/2, 280, p.Identity, fmt.Sprintf("fill:%s;font-size:36px;font-weight:bold;text-anchor:middle", css(colorPosterAccent)))

	for i, s := range p.Stats(false) {
		y := 400 + i*120
		canvas.Text(posterW/2, y, s.Value, fmt.Sprintf("fill:%s;font-size:44px;font-weight:bold;text-anchor:middle", css(colorPosterText)))
		canvas.Text(posterW/2, y+36, s.Label, fmt.Sprintf("fill:%s;font-size:18px;text-anchor:middle", css(colorPosterSubtle)))
	}

	canvas.Text(posterW/2, posterH-60, p.DateString(), "fill:#ffffff;font-size:16px;text-anchor:middle")
	canvas.End()
	return nil
}

// WritePosterPNG renders the poster as PNG. Without fontPath the text is
// drawn with a bitmap font that only covers ASCII.
func WritePosterPNG(w io.Writer, p Poster, fontPath string) error {
	dc := gg.NewContext(posterW, posterH)
	dc.SetColor(colorPosterBG)
	dc.Clear()

	dc.SetColor(colorPosterCard)
	dc.DrawRoundedRectangle(40, 120, posterW-80, posterH-240, 24)
	dc.Fill()

	ascii := fontPath == ""
	setFace := func(points float64) error {
		if ascii {
			dc.SetFontFace(basicfont.Face7x13)
			return nil
		}
		return dc.LoadFontFace(fontPath, points)
	}

	title, label, identity := p.Title, "我的年度身份", p.Identity
	if ascii {
		title, label, identity = "Annual Report "+p.Date.Format("2006"), "My identity", "Campus Life Recorder"
	}

	if err := setFace(28); err != nil {
		return fmt.Errorf("loading font %s: %w", fontPath, err)
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(title, posterW/2, 80, 0.5, 0.5)

	dc.SetColor(colorPosterSubtle)
	dc.DrawStringAnchored(label, posterW/2, 215, 0.5, 0.5)
	dc.SetColor(colorPosterAccent)
	dc.DrawStringAnchored(identity, posterW/2, 275, 0.5, 0.5)

	for i, s := range p.Stats(ascii) {
		y := float64(390 + i*120)
		dc.SetColor(colorPosterText)
		dc.DrawStringAnchored(s.Value, posterW/2, y, 0.5, 0.5)
		dc.SetColor(colorPosterSubtle)
		dc.DrawStringAnchored(s.Label, posterW/2, y+36, 0.5, 0.5)
	}

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(p.DateString(), posterW/2, posterH-60, 0.5, 0.5)
	return dc.EncodePNG(w)
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
