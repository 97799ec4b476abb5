package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// DefaultPath is the roster document's path relative to the report root.
const DefaultPath = "team.json"

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 10 * time.Second

// ErrNotFound is returned when the roster document does not exist.
var ErrNotFound = errors.New("roster document not found")

// FileFetcher reads the roster from the local filesystem. Path is
// resolved against Dir when relative.
type FileFetcher struct {
	Dir  string
	Path string
}

// Fetch reads and decodes the file.
func (f FileFetcher) Fetch(ctx context.Context) (Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := f.Path
	if path == "" {
		path = DefaultPath
	}
	if !filepath.IsAbs(path) && f.Dir != "" {
		path = filepath.Join(f.Dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	return Decode(data)
}

// HTTPFetcher fetches the roster over HTTP. Path is resolved against
// BaseURL the way a browser resolves a relative fetch.
type HTTPFetcher struct {
	BaseURL string
	Path    string
	Client  *http.Client
}

// URL returns the resolved document URL.
func (f HTTPFetcher) URL() (string, error) {
	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	p := f.Path
	if p == "" {
		p = DefaultPath
	}
	rel, err := url.Parse(p)
	if err != nil {
		return "", fmt.Errorf("parsing roster path: %w", err)
	}
	return base.ResolveReference(rel).String(), nil
}

// Fetch performs the GET and decodes the body.
func (f HTTPFetcher) Fetch(ctx context.Context) (Roster, error) {
	u, err := f.URL()
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching roster: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, u)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching roster: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading roster body: %w", err)
	}
	return Decode(body)
}
