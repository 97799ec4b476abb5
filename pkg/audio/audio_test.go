package audio

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeProc struct {
	mu     sync.Mutex
	killed bool
	exit   chan struct{}
}

func newFakeProc() *fakeProc { return &fakeProc{exit: make(chan struct{})} }

func (f *fakeProc) Kill() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.killed {
		f.killed = true
		close(f.exit)
	}
	return nil
}

func (f *fakeProc) Wait() error {
	<-f.exit
	return nil
}

type recorder struct {
	name  string
	args  []string
	procs []*fakeProc
}

func (r *recorder) start(name string, args ...string) (Process, error) {
	r.name, r.args = name, args
	p := newFakeProc()
	r.procs = append(r.procs, p)
	return p, nil
}

func onlyHave(names ...string) func(string) (string, error) {
	return func(n string) (string, error) {
		for _, have := range names {
			if n == have {
				return "/usr/bin/" + n, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestPlayPicksFirstInstalledPlayer(t *testing.T) {
	rec := &recorder{}
	p := NewCommandPlayer("bgm.mp3", "", true, WithLookPath(onlyHave("ffplay", "mpv")), WithStarter(rec.start))
	if err := p.Play(); err != nil {
		t.Fatal(err)
	}
	if rec.name != "/usr/bin/ffplay" {
		t.Fatalf("started %q", rec.name)
	}
	if got := rec.args[len(rec.args)-1]; got != "bgm.mp3" || rec.args[0] != "-nodisp" {
		t.Fatalf("args = %v", rec.args)
	}
	if !p.Playing() {
		t.Fatal("should be playing")
	}
	// Second Play does not spawn another process.
	if err := p.Play(); err != nil || len(rec.procs) != 1 {
		t.Fatalf("duplicate play: %v, %d procs", err, len(rec.procs))
	}
	if err := p.Pause(); err != nil || p.Playing() || !rec.procs[0].killed {
		t.Fatal("pause should kill the process")
	}
}

func TestPlayWithoutPlayer(t *testing.T) {
	p := NewCommandPlayer("bgm.mp3", "", true, WithLookPath(onlyHave()))
	if err := p.Play(); !errors.Is(err, ErrNoPlayer) {
		t.Fatalf("expected ErrNoPlayer, got %v", err)
	}
	if p.Playing() {
		t.Fatal("nothing should be playing")
	}
}

func TestConfiguredPlayerOnly(t *testing.T) {
	rec := &recorder{}
	p := NewCommandPlayer("a.mp3", "paplay", true, WithLookPath(onlyHave("afplay")), WithStarter(rec.start))
	if err := p.Play(); !errors.Is(err, ErrNoPlayer) {
		t.Fatalf("configured player missing should fail, got %v", err)
	}
}

func TestToggle(t *testing.T) {
	rec := &recorder{}
	p := NewCommandPlayer("a.mp3", "afplay", true, WithLookPath(onlyHave("afplay")), WithStarter(rec.start))
	if err := p.Play(); err != nil {
		t.Fatal(err)
	}

	on, err := p.Toggle()
	if on || err != nil || p.Enabled() || p.Playing() {
		t.Fatalf("toggle off: on=%v err=%v", on, err)
	}
	on, err = p.Toggle()
	if !on || err != nil || !p.Enabled() || !p.Playing() {
		t.Fatalf("toggle on: on=%v err=%v", on, err)
	}
	_ = p.Close()
}

func TestProcessExitClearsPlaying(t *testing.T) {
	rec := &recorder{}
	p := NewCommandPlayer("a.mp3", "afplay", true, WithLookPath(onlyHave("afplay")), WithStarter(rec.start))
	if err := p.Play(); err != nil {
		t.Fatal(err)
	}
	proc := rec.procs[0]
	_ = proc.Kill() // simulate the track ending

	for i := 0; i < 1000 && p.Playing(); i++ {
		time.Sleep(time.Millisecond)
	}
	if p.Playing() {
		t.Fatal("exited process should be reaped")
	}
}
