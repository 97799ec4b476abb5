package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/vanderheijden86/annualreport/pkg/audio"
	"github.com/vanderheijden86/annualreport/pkg/config"
	"github.com/vanderheijden86/annualreport/pkg/export"
	"github.com/vanderheijden86/annualreport/pkg/logging"
	"github.com/vanderheijden86/annualreport/pkg/metrics"
	"github.com/vanderheijden86/annualreport/pkg/roster"
	"github.com/vanderheijden86/annualreport/pkg/share"
	"github.com/vanderheijden86/annualreport/pkg/slides"
	"github.com/vanderheijden86/annualreport/pkg/ui"
	"github.com/vanderheijden86/annualreport/pkg/version"
	"github.com/vanderheijden86/annualreport/pkg/watcher"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: annualreport [options] [run|poster|chart|validate] [command options]")
	fmt.Fprintln(w, "\nA terminal annual report deck.")
	fmt.Fprintln(w, "\nCommands:")
	fmt.Fprintln(w, "  run       Show the report (default)")
	fmt.Fprintln(w, "  poster    Export the shareable poster")
	fmt.Fprintln(w, "  chart     Export a chart (monthly or engagement)")
	fmt.Fprintln(w, "  validate  Check the config and deck")
	fmt.Fprintln(w, "\nOptions:")
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("annualreport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Config file (default $XDG_CONFIG_HOME/annualreport/config.yaml)")
	deckPath := fs.String("deck", "", "Deck YAML replacing the built-in content")
	watch := fs.Bool("watch", false, "Reload the deck when the file changes")
	metricsFlag := fs.Bool("metrics", false, "Print timing metrics on exit")
	versionFlag := fs.Bool("version", false, "Show version")
	fs.Usage = func() {
		usage(stderr)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "annualreport %s\n", version.Version)
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if *deckPath != "" {
		cfg.DeckPath = *deckPath
	}
	if *watch {
		cfg.Watch = true
	}
	if *metricsFlag {
		metrics.SetEnabled(true)
		defer func() { _ = metrics.WriteSummary(stderr) }()
	}

	cmd, rest := "run", fs.Args()
	if len(rest) > 0 {
		cmd, rest = rest[0], rest[1:]
	}
	switch cmd {
	case "run":
		return runReport(cfg, stderr)
	case "poster":
		return runPoster(cfg, rest, stdout, stderr)
	case "chart":
		return runChart(rest, stdout, stderr)
	case "validate":
		return runValidate(cfg, stdout, stderr)
	}
	fmt.Fprintf(stderr, "Unknown command %q\n\n", cmd)
	fs.Usage()
	return 2
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// loadDeck reads the deck and checks it against the slide registry.
func loadDeck(path string, reg *slides.Registry) (*slides.Deck, error) {
	defer metrics.Timer(metrics.DeckLoad)()
	d, err := slides.LoadDeck(path)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(reg); err != nil {
		return nil, fmt.Errorf("invalid deck: %w", err)
	}
	return d, nil
}

// newFetcher picks the roster backend named by the config.
func newFetcher(rc config.RosterConfig) (roster.Fetcher, error) {
	switch rc.Source {
	case config.SourceFile, "":
		return roster.FileFetcher{Path: rc.Path}, nil
	case config.SourceHTTP:
		return roster.HTTPFetcher{
			BaseURL: rc.BaseURL,
			Path:    rc.Path,
			Client:  &http.Client{Timeout: rc.Timeout()},
		}, nil
	case config.SourceSQLite:
		return roster.SQLiteFetcher{Path: rc.Path}, nil
	}
	return nil, fmt.Errorf("unknown roster source %q", rc.Source)
}

func runReport(cfg config.Config, stderr io.Writer) int {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid config: %v\n", err)
		return 1
	}
	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening log: %v\n", err)
		return 1
	}
	defer func() { _ = closeLog() }()

	reg := slides.DefaultRegistry()
	deck, err := loadDeck(cfg.DeckPath, reg)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading deck: %v\n", err)
		return 1
	}
	fetcher, err := newFetcher(cfg.Roster)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid config: %v\n", err)
		return 1
	}
	loader := roster.NewLoader(fetcher, roster.WithLogger(log.Named("roster")))

	player := audio.NewCommandPlayer(cfg.Audio.File, cfg.Audio.Player, cfg.Audio.Enabled)
	defer func() { _ = player.Close() }()

	shareURL := cfg.ShareURL
	if shareURL == "" {
		shareURL = deck.ShareURL
	}
	sharer := share.New(shareURL, share.WithLogger(log.Named("share")))

	var w *watcher.Watcher
	if cfg.Watch {
		if cfg.DeckPath == "" {
			fmt.Fprintln(stderr, "Warning: --watch needs --deck; the built-in deck is not watched")
		} else {
			w, err = watcher.New(cfg.DeckPath,
				watcher.WithLogger(log.Named("watcher")),
				watcher.WithOnError(func(err error) {
					log.Warn("deck watcher error", zap.Error(err))
				}),
			)
			if err != nil {
				fmt.Fprintf(stderr, "Error watching deck: %v\n", err)
				return 1
			}
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if err := w.Start(ctx); err != nil {
				fmt.Fprintf(stderr, "Error watching deck: %v\n", err)
				return 1
			}
			defer w.Stop()
		}
	}

	log.Info("starting report",
		zap.String("version", version.Version),
		zap.String("deck", cfg.DeckPath),
		zap.String("roster_source", cfg.Roster.Source))

	m := ui.NewModel(ui.Options{
		Deck:      deck,
		Registry:  reg,
		Loader:    loader,
		Player:    player,
		Sharer:    sharer,
		Watcher:   w,
		DeckPath:  cfg.DeckPath,
		PosterDir: cfg.Poster.OutputDir,
		FontPath:  cfg.Poster.FontPath,
		Logger:    log,
	})
	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(stderr, "Error running report: %v\n", err)
		return 1
	}
	return 0
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated runs: set AR_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("AR_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}

func runPoster(cfg config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("poster", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("out", "", "Output file (.png or .svg)")
	format := fs.String("format", "", "svg or png (default from the file extension)")
	font := fs.String("font", cfg.Poster.FontPath, "TTF font with CJK glyphs for PNG text")
	yes := fs.Bool("y", false, "Use defaults instead of prompting for missing options")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	deck, err := loadDeck(cfg.DeckPath, slides.DefaultRegistry())
	if err != nil {
		fmt.Fprintf(stderr, "Error loading deck: %v\n", err)
		return 1
	}

	opts := export.PosterOptions{Path: *out, Format: *format, FontPath: *font}
	switch {
	case opts.Path != "":
	case *yes:
		opts.Path = filepath.Join(cfg.Poster.OutputDir, export.DefaultPosterFile)
	default:
		if err := export.PromptPosterOptions(&opts, cfg.Poster.OutputDir); err != nil {
			fmt.Fprintf(stderr, "Poster cancelled: %v\n", err)
			return 1
		}
	}

	title := deck.Title
	if title == "" {
		title = share.DefaultTitle
	}
	path, err := export.SavePoster(export.DefaultPoster(title, time.Now()), opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error saving poster: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Poster saved to %s\n", path)
	return 0
}

func runChart(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("chart", flag.ContinueOnError)
	fs.SetOutput(stderr)
	kind := fs.String("kind", export.ChartMonthly, "monthly or engagement")
	out := fs.String("out", "", "Output file (default <kind>.<format>)")
	format := fs.String("format", "", "svg or png (engagement is svg only)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	path, err := export.SaveChart(export.ChartOptions{Kind: *kind, Path: *out, Format: *format})
	if err != nil {
		fmt.Fprintf(stderr, "Error saving chart: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Chart saved to %s\n", path)
	return 0
}

func runValidate(cfg config.Config, stdout, stderr io.Writer) int {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid config: %v\n", err)
		return 1
	}
	reg := slides.DefaultRegistry()
	deck, err := loadDeck(cfg.DeckPath, reg)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading deck: %v\n", err)
		return 1
	}
	source := cfg.DeckPath
	if source == "" {
		source = "built-in"
	}
	fmt.Fprintf(stdout, "Config ok (roster source %s)\n", cfg.Roster.Source)
	fmt.Fprintf(stdout, "Deck ok: %d slides (%s)\n", len(deck.Slides), source)
	return 0
}
