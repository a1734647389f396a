package ffplayaudio

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/user/asciiplay/pkg/adapters/logger"
	"github.com/user/asciiplay/pkg/ports"
)

// fakeFFplay writes a shell script standing in for ffplay.
func fakeFFplay(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffplay")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestArgs(t *testing.T) {
	want := []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "movie.mp4"}
	if got := Args("movie.mp4"); !reflect.DeepEqual(got, want) {
		t.Errorf("Args = %v, want %v", got, want)
	}
}

func TestPlayer_MissingBinaryWarnsOnce(t *testing.T) {
	var out, errOut bytes.Buffer
	log := logger.NewConsoleWriter(ports.LevelInfo, &out, &errOut)
	p := New(Options{FFplayPath: filepath.Join(t.TempDir(), "missing")}, log)

	if p.Start("a.mp4") {
		t.Fatal("Start should report false without ffplay")
	}
	if p.Start("a.mp4") {
		t.Fatal("Start should keep reporting false")
	}

	warnings := errOut.String()
	if n := strings.Count(warnings, "ffplay not found - playing without audio"); n != 1 {
		t.Errorf("expected one warning, got %d:\n%s", n, warnings)
	}
	if !strings.Contains(warnings, "brew install ffmpeg") {
		t.Errorf("expected install hints, got:\n%s", warnings)
	}

	// Stop without a process is a no-op.
	p.Stop()
	p.Stop()
}

func TestPlayer_StartStop(t *testing.T) {
	bin := fakeFFplay(t, "exec sleep 30")
	p := New(Options{FFplayPath: bin}, logger.NewNoop())

	if !p.Start("a.mp4") {
		t.Fatal("expected Start to succeed")
	}
	if !p.Running() {
		t.Error("expected process to be running")
	}

	start := time.Now()
	p.Stop()
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("graceful stop took too long: %s", elapsed)
	}
	if p.Running() {
		t.Error("expected process to be stopped")
	}

	p.Stop()
}

func TestPlayer_StopKillsStubbornProcess(t *testing.T) {
	bin := fakeFFplay(t, "trap '' TERM\nwhile true; do sleep 1; done")
	p := New(Options{FFplayPath: bin, StopTimeout: 100 * time.Millisecond}, logger.NewNoop())

	if !p.Start("a.mp4") {
		t.Fatal("expected Start to succeed")
	}
	// Give the shell time to install its trap.
	time.Sleep(100 * time.Millisecond)

	start := time.Now()
	p.Stop()
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("kill fallback took too long: %s", elapsed)
	}
	if p.Running() {
		t.Error("expected process to be killed")
	}
}

func TestPlayer_ProcessAlreadyExited(t *testing.T) {
	bin := fakeFFplay(t, "exit 0")
	p := New(Options{FFplayPath: bin}, logger.NewNoop())

	if !p.Start("a.mp4") {
		t.Fatal("expected Start to succeed")
	}
	deadline := time.Now().Add(2 * time.Second)
	for p.Running() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	p.Stop()
	if p.Running() {
		t.Error("expected no running process")
	}
}
