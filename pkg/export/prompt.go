package export

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// isTerminal reports whether stdin is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm builds a form, switching to accessible mode without a TTY.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// PromptPosterOptions asks for the poster's output path and format.
// Values already set in opts are offered as defaults.
func PromptPosterOptions(opts *PosterOptions, outputDir string) error {
	path := opts.Path
	if path == "" {
		path = filepath.Join(outputDir, DefaultPosterFile)
	}
	format := opts.Format
	if format == "" {
		format = "png"
	}

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Poster format").
				Options(
					huh.NewOption("PNG image", "png"),
					huh.NewOption("SVG vector", "svg"),
				).
				Value(&format),
			huh.NewInput().
				Title("Save to").
				Value(&path).
				Placeholder(DefaultPosterFile),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if path == "" {
		path = DefaultPosterFile
	}
	if ext := filepath.Ext(path); ext != "."+format {
		path = path[:len(path)-len(ext)] + "." + format
	}
	opts.Path, opts.Format = path, format
	return nil
}
