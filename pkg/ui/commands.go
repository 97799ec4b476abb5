package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/annualreport/pkg/export"
	"github.com/vanderheijden86/annualreport/pkg/metrics"
	"github.com/vanderheijden86/annualreport/pkg/share"
	"github.com/vanderheijden86/annualreport/pkg/slides"
	"github.com/vanderheijden86/annualreport/pkg/watcher"
)

// savePoster writes the poster in the background.
func (m Model) savePoster() tea.Cmd {
	title := share.DefaultTitle
	if m.deck != nil && m.deck.Title != "" {
		title = m.deck.Title
	}
	p := export.DefaultPoster(title, m.now())
	opts := export.PosterOptions{
		Path:     filepath.Join(m.posterDir, export.DefaultPosterFile),
		FontPath: m.fontPath,
	}
	return func() tea.Msg {
		path, err := export.SavePoster(p, opts)
		return posterSavedMsg{path: path, err: err}
	}
}

// waitForDeckChange blocks until the watcher reports a change.
func waitForDeckChange(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Changed(); !ok {
			return nil
		}
		return deckChangedMsg{}
	}
}

// reloadDeck parses and validates the deck file. A deck that fails
// validation is reported and never replaces the running one.
func reloadDeck(path string, reg *slides.Registry) tea.Cmd {
	return func() tea.Msg {
		stop := metrics.Timer(metrics.DeckLoad)
		d, err := slides.LoadDeck(path)
		stop()
		if err != nil {
			return deckReloadedMsg{err: err}
		}
		if err := d.Validate(reg); err != nil {
			return deckReloadedMsg{err: err}
		}
		return deckReloadedMsg{deck: d}
	}
}
