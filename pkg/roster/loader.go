package roster

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/vanderheijden86/annualreport/pkg/metrics"
)

// Fetcher retrieves and decodes the roster document.
type Fetcher interface {
	Fetch(ctx context.Context) (Roster, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (Roster, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) (Roster, error) { return f(ctx) }

const loadKey = "roster"

// Loader memoizes the roster. At most one fetch is in flight; concurrent
// callers share its result. A successful result is cached for the life of
// the Loader and a failed one is never cached.
type Loader struct {
	fetcher Fetcher
	log     *zap.Logger

	group   singleflight.Group
	fetches atomic.Int64

	mu     sync.RWMutex
	cached Roster
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.log = l
		}
	}
}

// NewLoader returns a Loader backed by f.
func NewLoader(f Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{fetcher: f, log: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Cached returns the roster if it has been loaded.
func (l *Loader) Cached() (Roster, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cached, l.cached != nil
}

// Fetches reports how many fetches have been started.
func (l *Loader) Fetches() int64 {
	return l.fetches.Load()
}

// Load returns the roster, fetching it if needed. Cancelling ctx abandons
// the wait but not the shared fetch, which other callers may still need.
func (l *Loader) Load(ctx context.Context) (Roster, error) {
	if r, ok := l.Cached(); ok {
		metrics.RosterCache.Hit()
		return r, nil
	}
	metrics.RosterCache.Miss()

	ch := l.group.DoChan(loadKey, func() (any, error) {
		if r, ok := l.Cached(); ok {
			return r, nil
		}
		l.fetches.Add(1)
		stop := metrics.Timer(metrics.RosterFetch)
		r, err := l.fetcher.Fetch(context.WithoutCancel(ctx))
		stop()
		if err != nil {
			l.log.Warn("roster fetch failed", zap.Error(err))
			return nil, err
		}
		if r == nil {
			r = Roster{}
		}
		l.mu.Lock()
		l.cached = r
		l.mu.Unlock()
		l.log.Info("roster loaded", zap.Int("departments", len(r)))
		return r, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("loading roster: %w", res.Err)
		}
		return res.Val.(Roster), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Preload starts a load whose failure is only logged; the next Load
// retries.
func (l *Loader) Preload(ctx context.Context) {
	if _, err := l.Load(ctx); err != nil {
		l.log.Warn("roster preload failed, will retry on first use", zap.Error(err))
	}
}

// Members loads the roster and returns the members of dept.
func (l *Loader) Members(ctx context.Context, dept string) ([]Member, error) {
	r, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return r.Members(dept), nil
}
