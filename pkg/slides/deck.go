package slides

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_deck.yaml
var defaultDeckYAML []byte

// Control names an interactive widget hosted by a slide.
type Control string

const (
	ControlMusic       Control = "music"
	ControlIdentity    Control = "identity"
	ControlCounters    Control = "counters"
	ControlMonthly     Control = "monthly_chart"
	ControlCalendar    Control = "calendar"
	ControlHeatmap     Control = "heatmap_chart"
	ControlSeasons     Control = "seasons"
	ControlAvatars     Control = "avatars"
	ControlSlider      Control = "dept_slider"
	ControlDepartments Control = "departments"
	ControlTrainings   Control = "trainings"
	ControlQuotes      Control = "quotes"
	ControlFeedback    Control = "feedback"
	ControlSubscribe   Control = "subscribe"
	ControlPoster      Control = "poster"
	ControlShare       Control = "share"
)

var knownControls = map[Control]bool{
	ControlMusic: true, ControlIdentity: true, ControlCounters: true,
	ControlMonthly: true, ControlCalendar: true, ControlHeatmap: true,
	ControlSeasons: true, ControlAvatars: true, ControlSlider: true,
	ControlDepartments: true, ControlTrainings: true, ControlQuotes: true,
	ControlFeedback: true, ControlSubscribe: true, ControlPoster: true,
	ControlShare: true,
}

// Counter is an animated number shown on a slide.
type Counter struct {
	Label  string `yaml:"label"`
	Target int    `yaml:"target"`
	Suffix string `yaml:"suffix,omitempty"`
}

// Action is a button whose only effect is an informational notice.
type Action struct {
	Key     string `yaml:"key"`
	Label   string `yaml:"label"`
	Message string `yaml:"message"`
}

// Slide is the content of one registry entry.
type Slide struct {
	ID       ID        `yaml:"id"`
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle,omitempty"`
	Body     string    `yaml:"body,omitempty"` // markdown
	Controls []Control `yaml:"controls,omitempty"`
	Counters []Counter `yaml:"counters,omitempty"`
	Actions  []Action  `yaml:"actions,omitempty"`
}

// Has reports whether the slide hosts control c.
func (s Slide) Has(c Control) bool {
	for _, have := range s.Controls {
		if have == c {
			return true
		}
	}
	return false
}

// Deck is the full report content.
type Deck struct {
	Title    string  `yaml:"title"`
	Year     int     `yaml:"year"`
	ShareURL string  `yaml:"share_url,omitempty"`
	Slides   []Slide `yaml:"slides"`

	byID map[ID]int
}

// Common deck errors.
var (
	ErrMissingSlide = errors.New("deck is missing a registered slide")
	ErrUnknownSlide = errors.New("deck contains an unregistered slide")
)

// DefaultDeck returns the embedded report content.
func DefaultDeck() (*Deck, error) {
	return ParseDeck(defaultDeckYAML)
}

// LoadDeck reads a deck from path. An empty path yields the default deck.
func LoadDeck(path string) (*Deck, error) {
	if path == "" {
		return DefaultDeck()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck: %w", err)
	}
	return ParseDeck(data)
}

// ParseDeck decodes YAML deck content.
func ParseDeck(data []byte) (*Deck, error) {
	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing deck: %w", err)
	}
	d.byID = make(map[ID]int, len(d.Slides))
	for i, s := range d.Slides {
		if _, dup := d.byID[s.ID]; dup {
			return nil, fmt.Errorf("parsing deck: duplicate slide %q", s.ID)
		}
		for _, c := range s.Controls {
			if !knownControls[c] {
				return nil, fmt.Errorf("parsing deck: slide %q has unknown control %q", s.ID, c)
			}
		}
		d.byID[s.ID] = i
	}
	return &d, nil
}

// Slide returns the content for id.
func (d *Deck) Slide(id ID) (Slide, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Slide{}, false
	}
	return d.Slides[i], true
}

// Validate checks the deck covers exactly the registry's slides.
func (d *Deck) Validate(r *Registry) error {
	var missing, unknown []string
	for _, id := range r.IDs() {
		if _, ok := d.byID[id]; !ok {
			missing = append(missing, string(id))
		}
	}
	for _, s := range d.Slides {
		if _, ok := r.Lookup(s.ID); !ok {
			unknown = append(unknown, string(s.ID))
		}
	}
	switch {
	case len(missing) > 0:
		return fmt.Errorf("%w: %s", ErrMissingSlide, strings.Join(missing, ", "))
	case len(unknown) > 0:
		return fmt.Errorf("%w: %s", ErrUnknownSlide, strings.Join(unknown, ", "))
	}
	return nil
}
