// Package share offers the report link to the user. A terminal has no
// native share sheet, so the link is copied to the system clipboard and
// shown together with the fallback notice.
package share

import (
	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// Fallback is shown when no native share target exists.
const Fallback = "分享功能在移动端浏览器中可用，请使用分享按钮或复制链接分享给好友！"

// Default share payload.
const (
	DefaultTitle = "我的2025重医年度报告"
	DefaultText  = "来看看我在2025年与重医官微的互动记录！"
)

// Result is what the UI shows after a share attempt.
type Result struct {
	Message string
	URL     string
	Copied  bool
}

// Sharer shares a fixed report URL.
type Sharer struct {
	URL   string
	Title string
	Text  string

	copy func(string) error
	log  *zap.Logger
}

// Option configures a Sharer.
type Option func(*Sharer)

// WithClipboard replaces the clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(s *Sharer) { s.copy = fn }
}

// WithLogger sets the logger used for swallowed clipboard failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sharer) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a Sharer for url.
func New(url string, opts ...Option) *Sharer {
	s := &Sharer{
		URL:   url,
		Title: DefaultTitle,
		Text:  DefaultText,
		copy:  clipboard.WriteAll,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Share copies the link when possible and always returns the fallback
// notice with the URL. It never fails.
func (s *Sharer) Share() Result {
	res := Result{Message: Fallback + "\n\n" + s.URL, URL: s.URL}
	if s.copy == nil || s.URL == "" {
		return res
	}
	if err := s.copy(s.URL); err != nil {
		s.log.Warn("clipboard unavailable, showing link only", zap.Error(err))
		return res
	}
	res.Copied = true
	s.log.Info("share link copied", zap.String("url", s.URL))
	return res
}
