// Package config loads and saves annualreport configuration.
//
// Paths follow the XDG Base Directory specification:
//   - Config: ~/.config/annualreport/config.yaml
//   - State:  ~/.local/state/annualreport/ (log files)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "annualreport"

// Roster sources.
const (
	SourceFile   = "file"
	SourceHTTP   = "http"
	SourceSQLite = "sqlite"
)

// AudioConfig controls the cover's background music.
type AudioConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file,omitempty"`
	Player  string `yaml:"player,omitempty"` // afplay, paplay, ffplay; empty picks the first found
}

// RosterConfig selects where the team roster comes from.
type RosterConfig struct {
	Source         string `yaml:"source,omitempty"`   // file, http, sqlite
	Path           string `yaml:"path,omitempty"`     // file or db path, or the path relative to base_url
	BaseURL        string `yaml:"base_url,omitempty"` // http only
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// Timeout returns the fetch timeout as a duration.
func (r RosterConfig) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// PosterConfig holds poster export settings.
type PosterConfig struct {
	FontPath  string `yaml:"font_path,omitempty"` // TTF with CJK glyphs for PNG output
	OutputDir string `yaml:"output_dir,omitempty"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Level      string `yaml:"level,omitempty"` // debug, info, warn, error
	Format     string `yaml:"format,omitempty"` // json or console
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	DeckPath string       `yaml:"deck_path,omitempty"` // empty uses the built-in deck
	ShareURL string       `yaml:"share_url,omitempty"`
	Watch    bool         `yaml:"watch,omitempty"`
	Audio    AudioConfig  `yaml:"audio"`
	Roster   RosterConfig `yaml:"roster"`
	Poster   PosterConfig `yaml:"poster,omitempty"`
	Log      LogConfig    `yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with defaults filled in.
func DefaultConfig() Config {
	return Config{
		Audio: AudioConfig{
			Enabled: true,
			File:    "assets/music/bgm.mp3",
		},
		Roster: RosterConfig{
			Source:         SourceFile,
			Path:           "team.json",
			TimeoutSeconds: 10,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			File:       filepath.Join(StateDir(), "annualreport.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Validate checks values that would otherwise fail later and less clearly.
func (c Config) Validate() error {
	switch c.Roster.Source {
	case SourceFile, SourceSQLite:
		if c.Roster.Path == "" {
			return fmt.Errorf("roster.path is required for source %q", c.Roster.Source)
		}
	case SourceHTTP:
		if c.Roster.BaseURL == "" {
			return fmt.Errorf("roster.base_url is required for source %q", SourceHTTP)
		}
	default:
		return fmt.Errorf("unknown roster source %q", c.Roster.Source)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// ConfigDir returns the XDG config directory.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback, appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads config.yaml from the XDG config directory.
// A missing file yields DefaultConfig.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from path. A missing file yields DefaultConfig.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.DeckPath = expandHome(cfg.DeckPath)
	cfg.Audio.File = expandHome(cfg.Audio.File)
	cfg.Poster.FontPath = expandHome(cfg.Poster.FontPath)
	cfg.Poster.OutputDir = expandHome(cfg.Poster.OutputDir)
	cfg.Log.File = expandHome(cfg.Log.File)
	if cfg.Roster.Source != SourceHTTP {
		cfg.Roster.Path = expandHome(cfg.Roster.Path)
	}

	return cfg, nil
}

// Save writes cfg to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes cfg to path, creating parent directories.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
