// Package audio plays the cover's background music through an external
// command-line player.
package audio

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"
)

// ErrNoPlayer is returned when no supported player binary is installed.
// It is the terminal counterpart of a browser blocking autoplay.
var ErrNoPlayer = errors.New("no audio player found")

// Player controls background music.
type Player interface {
	Enabled() bool
	Play() error
	Pause() error
	Playing() bool
}

// known player commands and the arguments placed before the file.
var known = map[string][]string{
	"afplay": nil,
	"paplay": nil,
	"ffplay": {"-nodisp", "-autoexit", "-loglevel", "quiet"},
	"mpv":    {"--no-video", "--really-quiet"},
}

// search order when no player is configured
var preference = []string{"afplay", "paplay", "ffplay", "mpv"}

// Process is a running player.
type Process interface {
	Kill() error
	Wait() error
}

// Starter launches a player process.
type Starter func(name string, args ...string) (Process, error)

type execProcess struct{ cmd *exec.Cmd }

func (p execProcess) Kill() error { return p.cmd.Process.Kill() }
func (p execProcess) Wait() error { return p.cmd.Wait() }

func startExec(name string, args ...string) (Process, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return execProcess{cmd: cmd}, nil
}

// CommandPlayer runs an external player on a music file.
type CommandPlayer struct {
	File   string
	Player string // empty picks the first installed player

	lookPath func(string) (string, error)
	start    Starter

	mu      sync.Mutex
	enabled bool
	proc    Process
}

// Option configures a CommandPlayer.
type Option func(*CommandPlayer)

// WithLookPath replaces exec.LookPath.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(p *CommandPlayer) { p.lookPath = fn }
}

// WithStarter replaces process creation.
func WithStarter(s Starter) Option {
	return func(p *CommandPlayer) { p.start = s }
}

// NewCommandPlayer returns a player for file. enabled is the initial
// music preference.
func NewCommandPlayer(file, player string, enabled bool, opts ...Option) *CommandPlayer {
	p := &CommandPlayer{
		File:     file,
		Player:   player,
		enabled:  enabled,
		lookPath: exec.LookPath,
		start:    startExec,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Enabled reports the music preference.
func (p *CommandPlayer) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Playing reports whether a player process is running.
func (p *CommandPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.proc != nil
}

func (p *CommandPlayer) resolve() (string, []string, error) {
	candidates := preference
	if p.Player != "" {
		candidates = []string{p.Player}
	}
	for _, name := range candidates {
		path, err := p.lookPath(name)
		if err != nil {
			continue
		}
		args := append([]string{}, known[name]...)
		return path, append(args, p.File), nil
	}
	return "", nil, ErrNoPlayer
}

// Play starts playback. Calling Play while playing is a no-op.
func (p *CommandPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.proc != nil {
		return nil
	}
	if p.File == "" {
		return fmt.Errorf("play: %w", ErrNoPlayer)
	}
	bin, args, err := p.resolve()
	if err != nil {
		return fmt.Errorf("play %s: %w", p.File, err)
	}
	proc, err := p.start(bin, args...)
	if err != nil {
		return fmt.Errorf("starting %s: %w", bin, err)
	}
	p.proc = proc
	go p.reap(proc)
	return nil
}

// reap clears proc once it exits on its own.
func (p *CommandPlayer) reap(proc Process) {
	_ = proc.Wait()
	p.mu.Lock()
	if p.proc == proc {
		p.proc = nil
	}
	p.mu.Unlock()
}

// Pause stops playback.
func (p *CommandPlayer) Pause() error {
	p.mu.Lock()
	proc := p.proc
	p.proc = nil
	p.mu.Unlock()
	if proc == nil {
		return nil
	}
	return proc.Kill()
}

// Toggle flips the music preference, pausing or starting playback to
// match. The returned error comes from Play or Pause; the preference is
// flipped regardless.
func (p *CommandPlayer) Toggle() (bool, error) {
	p.mu.Lock()
	p.enabled = !p.enabled
	on := p.enabled
	p.mu.Unlock()
	if on {
		return on, p.Play()
	}
	return on, p.Pause()
}

// Close stops any running player.
func (p *CommandPlayer) Close() error {
	return p.Pause()
}
