package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/user/asciiplay/pkg/adapters/logger"
	"github.com/user/asciiplay/pkg/config"
	"github.com/user/asciiplay/pkg/glyph"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"video.mp4", "video.mp4"},
		{"  video.mp4 \n", "video.mp4"},
		{`"/tmp/my video.mp4"`, "/tmp/my video.mp4"},
		{"'/tmp/my video.mp4'", "/tmp/my video.mp4"},
		{` "quoted.mp4" `, "quoted.mp4"},
		{`"mismatched.mp4'`, `"mismatched.mp4'`},
		{`"`, `"`},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cleanPath(tt.in); got != tt.want {
			t.Errorf("cleanPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolvePath_Argument(t *testing.T) {
	var out bytes.Buffer
	got, err := resolvePath(`"clip.mp4"`, strings.NewReader("ignored\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "clip.mp4" {
		t.Errorf("expected clip.mp4, got %q", got)
	}
	if out.Len() != 0 {
		t.Errorf("should not prompt when a path is given, got %q", out.String())
	}
}

func TestResolvePath_Prompt(t *testing.T) {
	var out bytes.Buffer
	got, err := resolvePath("", strings.NewReader("'/videos/a b.mp4'\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/videos/a b.mp4" {
		t.Errorf("expected '/videos/a b.mp4', got %q", got)
	}
	if !strings.Contains(out.String(), "Enter video file path: ") {
		t.Errorf("expected prompt, got %q", out.String())
	}
}

func TestResolvePath_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	got, err := resolvePath("", strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty path, got %q", got)
	}
}

// newContext parses args against the app's flags.
func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	app := newApp()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		if err := f.Apply(set); err != nil {
			t.Fatalf("apply flag: %v", err)
		}
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return cli.NewContext(app, set, nil)
}

func TestBuildConfig_Defaults(t *testing.T) {
	cfg, err := buildConfig(newContext(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Audio {
		t.Error("audio should be enabled by default")
	}
	if cfg.Debug {
		t.Error("debug should be disabled by default")
	}
	if cfg.Width != 0 {
		t.Errorf("expected width 0, got %d", cfg.Width)
	}
}

func TestBuildConfig_Overrides(t *testing.T) {
	cfg, err := buildConfig(newContext(t,
		"-width", "60",
		"-no-audio",
		"-resample", "nearest",
		"-debug",
		"-debug-every", "5",
		"-log-level", "debug",
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Width != 60 {
		t.Errorf("expected width 60, got %d", cfg.Width)
	}
	if cfg.Audio {
		t.Error("audio should be disabled")
	}
	if cfg.Resample != "nearest" {
		t.Errorf("expected nearest, got %s", cfg.Resample)
	}
	if !cfg.Debug || cfg.DebugEvery != 5 {
		t.Errorf("expected debug every 5, got %v/%d", cfg.Debug, cfg.DebugEvery)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestBuildConfig_FileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asciiplay.yaml")
	data := "width: 40\npalette: \" .#\"\naudio: false\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := buildConfig(newContext(t, "-config", path, "-width", "50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Width != 50 {
		t.Errorf("flag should override file, got width %d", cfg.Width)
	}
	if cfg.Palette != " .#" {
		t.Errorf("expected palette from file, got %q", cfg.Palette)
	}
	if cfg.Audio {
		t.Error("audio should be disabled by the file")
	}
}

func TestBuildConfig_Invalid(t *testing.T) {
	if _, err := buildConfig(newContext(t, "-resample", "lanczos")); err == nil {
		t.Error("expected error for unknown resample method")
	}
	if _, err := buildConfig(newContext(t, "-config", filepath.Join(t.TempDir(), "missing.yaml"))); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestNewRenderStage(t *testing.T) {
	cfg := config.Defaults()
	if _, err := newRenderStage(cfg, logger.NewNoop()); err != nil {
		t.Errorf("defaults should build a render stage: %v", err)
	}

	cfg.Resample = "lanczos"
	if _, err := newRenderStage(cfg, logger.NewNoop()); err == nil {
		t.Error("expected error for unknown resample method")
	}

	cfg = config.Defaults()
	cfg.Palette = ""
	if _, err := newRenderStage(cfg, logger.NewNoop()); !errors.Is(err, glyph.ErrEmptyRamp) {
		t.Errorf("expected ErrEmptyRamp, got %v", err)
	}
}

func TestWatchSignals_ReturnsWhenDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		watchSignals(ctx, make(chan os.Signal, 1), func() {}, logger.NewNoop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watchSignals did not return after the context ended")
	}
}
