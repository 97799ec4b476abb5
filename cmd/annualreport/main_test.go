package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/annualreport/pkg/config"
	"github.com/vanderheijden86/annualreport/pkg/roster"
	"github.com/vanderheijden86/annualreport/pkg/version"
)

// isolate points the config lookup at an empty directory.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersionFlag(t *testing.T) {
	isolate(t)
	code, out, _ := runCLI(t, "--version")
	if code != 0 || !strings.Contains(out, version.Version) {
		t.Fatalf("--version: code=%d out=%q", code, out)
	}
}

func TestUnknownCommand(t *testing.T) {
	isolate(t)
	code, _, errOut := runCLI(t, "dance")
	if code != 2 || !strings.Contains(errOut, `Unknown command "dance"`) {
		t.Fatalf("unknown command: code=%d stderr=%q", code, errOut)
	}
}

func TestValidateBuiltInDeck(t *testing.T) {
	isolate(t)
	code, out, errOut := runCLI(t, "validate")
	if code != 0 {
		t.Fatalf("validate failed: %s", errOut)
	}
	if !strings.Contains(out, "Deck ok: 14 slides (built-in)") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestValidateRejectsIncompleteDeck(t *testing.T) {
	isolate(t)
	deck := filepath.Join(t.TempDir(), "deck.yaml")
	if err := os.WriteFile(deck, []byte("title: x\nslides:\n  - id: cover\n    title: c\n"), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
	code, _, errOut := runCLI(t, "--deck", deck, "validate")
	if code != 1 || !strings.Contains(errOut, "missing") {
		t.Fatalf("expected missing-slide failure, code=%d stderr=%q", code, errOut)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("roster:\n  source: ftp\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	code, _, errOut := runCLI(t, "--config", cfgPath, "validate")
	if code != 1 || !strings.Contains(errOut, "ftp") {
		t.Fatalf("expected config failure, code=%d stderr=%q", code, errOut)
	}
}

func TestPosterCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name  string
		file  string
		magic string
	}{
		{"svg", "poster.svg", "<?xml"},
		{"png", "poster.png", "\x89PNG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.file)
			code, stdout, errOut := runCLI(t, "poster", "--out", out)
			if code != 0 {
				t.Fatalf("poster failed: %s", errOut)
			}
			if !strings.Contains(stdout, out) {
				t.Fatalf("expected path in output, got %q", stdout)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("read poster: %v", err)
			}
			if !strings.HasPrefix(string(data), tt.magic) {
				t.Fatalf("expected %q header, got %q", tt.magic, data[:min(8, len(data))])
			}
		})
	}
}

func TestPosterDefaultsWithoutPrompt(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("poster:\n  output_dir: "+dir+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	code, _, errOut := runCLI(t, "--config", cfgPath, "poster", "-y")
	if code != 0 {
		t.Fatalf("poster -y failed: %s", errOut)
	}
	if _, err := os.Stat(filepath.Join(dir, "重医年度报告海报.png")); err != nil {
		t.Fatalf("default poster not written: %v", err)
	}
}

func TestChartCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	code, _, errOut := runCLI(t, "chart", "--kind", "monthly", "--out", filepath.Join(dir, "monthly.png"))
	if code != 0 {
		t.Fatalf("monthly chart failed: %s", errOut)
	}
	code, _, errOut = runCLI(t, "chart", "--kind", "engagement", "--out", filepath.Join(dir, "engagement.svg"))
	if code != 0 {
		t.Fatalf("engagement chart failed: %s", errOut)
	}
	code, _, errOut = runCLI(t, "chart", "--kind", "engagement", "--out", filepath.Join(dir, "engagement.png"))
	if code != 1 || !strings.Contains(errOut, "svg only") {
		t.Fatalf("expected png engagement rejection, code=%d stderr=%q", code, errOut)
	}
}

func TestMetricsSummaryOnExit(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "monthly.svg")
	code, _, errOut := runCLI(t, "--metrics", "chart", "--out", out)
	if code != 0 {
		t.Fatalf("chart failed: %s", errOut)
	}
	if !strings.Contains(errOut, "METRIC") || !strings.Contains(errOut, "chart_export") {
		t.Fatalf("expected metrics summary, got %q", errOut)
	}
}

func TestNewFetcher(t *testing.T) {
	tests := []struct {
		source  string
		want    string
		wantErr bool
	}{
		{config.SourceFile, "file", false},
		{config.SourceHTTP, "http", false},
		{config.SourceSQLite, "sqlite", false},
		{"ftp", "", true},
	}
	for _, tt := range tests {
		f, err := newFetcher(config.RosterConfig{Source: tt.source, Path: "team.json", BaseURL: "https://example.test/"})
		if tt.wantErr {
			if err == nil {
				t.Errorf("newFetcher(%q) should fail", tt.source)
			}
			continue
		}
		if err != nil {
			t.Fatalf("newFetcher(%q): %v", tt.source, err)
		}
		var got string
		switch f.(type) {
		case roster.FileFetcher:
			got = "file"
		case roster.HTTPFetcher:
			got = "http"
		case roster.SQLiteFetcher:
			got = "sqlite"
		}
		if got != tt.want {
			t.Errorf("newFetcher(%q) = %T", tt.source, f)
		}
	}
}
