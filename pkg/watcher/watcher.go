// Package watcher reports edits to a single file, typically the deck
// definition, so the program can reload it while running.
//
// fsnotify is used where available, watching the parent directory so that
// editors which save by rename are seen. Polling on mtime and size takes
// over when fsnotify cannot be set up or when AR_FORCE_POLL is set.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultPollInterval is the stat interval in polling mode.
const DefaultPollInterval = 2 * time.Second

// ForcePollEnv forces polling mode when set to a true value.
const ForcePollEnv = "AR_FORCE_POLL"

var (
	ErrFileRemoved    = errors.New("watched file was removed")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the polling interval.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// WithForcePoll skips fsnotify.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) { w.forcePoll = force }
}

// WithOnError sets a callback for watch errors. Errors are also logged.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) { w.onError = fn }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// Watcher watches one file.
type Watcher struct {
	path         string
	debounce     time.Duration
	pollInterval time.Duration
	forcePoll    bool
	onError      func(error)
	log          *zap.Logger

	debouncer *Debouncer
	changes   chan struct{}

	mu        sync.Mutex
	cancel    context.CancelFunc
	fsw       *fsnotify.Watcher
	polling   bool
	lastMtime time.Time
	lastSize  int64
	done      chan struct{}
}

// New returns a stopped Watcher for path.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	w := &Watcher{
		path:         abs,
		pollInterval: DefaultPollInterval,
		onError:      func(error) {},
		log:          zap.NewNop(),
		changes:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debouncer = NewDebouncer(w.debounce)
	return w, nil
}

// Path returns the absolute watched path.
func (w *Watcher) Path() string { return w.path }

// Changed receives after each debounced change. Bursts coalesce into one
// pending signal.
func (w *Watcher) Changed() <-chan struct{} { return w.changes }

// Polling reports whether the watcher fell back to polling.
func (w *Watcher) Polling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polling
}

// Running reports whether Start has been called without Stop.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}

// Start begins watching until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return ErrAlreadyStarted
	}

	if info, err := os.Stat(w.path); err == nil {
		w.lastMtime, w.lastSize = info.ModTime(), info.Size()
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.polling = w.forcePoll || envTrue(ForcePollEnv)

	if !w.polling {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			err = fsw.Add(filepath.Dir(w.path))
			if err != nil {
				fsw.Close()
			}
		}
		if err != nil {
			w.log.Warn("fsnotify unavailable, polling instead", zap.String("path", w.path), zap.Error(err))
			w.polling = true
		} else {
			w.fsw = fsw
		}
	}

	if w.polling {
		go w.poll(ctx, w.done)
	} else {
		go w.notify(ctx, w.fsw, w.done)
	}
	w.log.Debug("watching file", zap.String("path", w.path), zap.Bool("polling", w.polling))
	return nil
}

// Stop ends watching and waits for the watch goroutine to exit. The
// Changed channel stays open.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done, fsw := w.cancel, w.done, w.fsw
	w.cancel, w.fsw = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	if fsw != nil {
		fsw.Close()
	}
	<-done
	w.debouncer.Cancel()
}

func (w *Watcher) notify(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	target := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			switch {
			case ev.Has(fsnotify.Remove):
				w.fail(ErrFileRemoved)
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create), ev.Has(fsnotify.Rename):
				w.debouncer.Trigger(w.signal)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.fail(err)
		}
	}
}

func (w *Watcher) poll(ctx context.Context, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(w.pollInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.check()
		}
	}
}

// check compares the file against the last seen state.
func (w *Watcher) check() {
	info, err := os.Stat(w.path)
	w.mu.Lock()
	if err != nil {
		existed := !w.lastMtime.IsZero()
		w.lastMtime, w.lastSize = time.Time{}, 0
		w.mu.Unlock()
		if os.IsNotExist(err) {
			if existed {
				w.fail(ErrFileRemoved)
			}
			return
		}
		w.fail(err)
		return
	}
	changed := !info.ModTime().Equal(w.lastMtime) || info.Size() != w.lastSize
	w.lastMtime, w.lastSize = info.ModTime(), info.Size()
	w.mu.Unlock()
	if changed {
		w.debouncer.Trigger(w.signal)
	}
}

func (w *Watcher) signal() {
	if !w.Running() {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func (w *Watcher) fail(err error) {
	w.log.Warn("watch error", zap.String("path", w.path), zap.Error(err))
	w.onError(err)
}

func envTrue(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
