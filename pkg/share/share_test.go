package share

import (
	"errors"
	"strings"
	"testing"
)

func TestShareCopiesLink(t *testing.T) {
	var got string
	s := New("https://report.example/2025", WithClipboard(func(v string) error {
		got = v
		return nil
	}))
	res := s.Share()
	if !res.Copied || got != "https://report.example/2025" {
		t.Fatalf("expected link copied, got %+v (clipboard=%q)", res, got)
	}
	if !strings.HasPrefix(res.Message, Fallback) || !strings.HasSuffix(res.Message, "\n\nhttps://report.example/2025") {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestShareSwallowsClipboardFailure(t *testing.T) {
	s := New("https://report.example/2025", WithClipboard(func(string) error {
		return errors.New("no xclip")
	}))
	res := s.Share()
	if res.Copied {
		t.Fatal("failed copy must not be reported as copied")
	}
	if !strings.Contains(res.Message, res.URL) {
		t.Fatalf("message should still carry the link: %q", res.Message)
	}
}

func TestShareWithoutURL(t *testing.T) {
	called := false
	s := New("", WithClipboard(func(string) error { called = true; return nil }))
	if res := s.Share(); res.Copied || called {
		t.Fatal("empty url should not touch the clipboard")
	}
}

func TestDefaults(t *testing.T) {
	s := New("u")
	if s.Title != DefaultTitle || s.Text != DefaultText || s.copy == nil {
		t.Fatalf("unexpected defaults %+v", s)
	}
}
