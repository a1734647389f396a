package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/asciiplay/pkg/glyph"
	"github.com/user/asciiplay/pkg/ports"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asciiplay.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.MaxWidth != 120 {
		t.Errorf("expected max width 120, got %d", cfg.MaxWidth)
	}
	if cfg.Palette != glyph.DefaultRamp {
		t.Errorf("expected default ramp, got %q", cfg.Palette)
	}
	if cfg.DefaultFPS != 30 {
		t.Errorf("expected 30 fps, got %v", cfg.DefaultFPS)
	}
	if cfg.PrerollMs != 2000 || cfg.AudioOffsetMs != 100 || cfg.AudioStopTimeoutMs != 1000 {
		t.Errorf("unexpected timing defaults: %+v", cfg)
	}
	if cfg.ProgressWidth != 30 {
		t.Errorf("expected progress width 30, got %d", cfg.ProgressWidth)
	}
	if !cfg.Audio {
		t.Error("expected audio enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
width: 80
palette: " .oO@"
resample: catmullrom
audio: false
preroll_ms: 0
log_level: debug
debug: true
debug_every: 10
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Width != 80 {
		t.Errorf("expected width 80, got %d", cfg.Width)
	}
	if cfg.Palette != " .oO@" {
		t.Errorf("expected custom palette, got %q", cfg.Palette)
	}
	if cfg.Resample != "catmullrom" {
		t.Errorf("expected catmullrom, got %q", cfg.Resample)
	}
	if cfg.Audio {
		t.Error("expected audio disabled")
	}
	if cfg.PrerollMs != 0 {
		t.Errorf("expected explicit zero preroll, got %d", cfg.PrerollMs)
	}
	if cfg.LogLevelValue() != ports.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevelValue())
	}

	// Untouched keys keep defaults.
	if cfg.MaxWidth != 120 || cfg.AudioOffsetMs != 100 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config: %v", err)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeConfig(t, "width: [not, a, number]\n")
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty palette", func(c *Config) { c.Palette = "" }},
		{"unknown resample", func(c *Config) { c.Resample = "lanczos" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"zero max width", func(c *Config) { c.MaxWidth = 0 }},
		{"negative debug interval", func(c *Config) { c.DebugEvery = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestToPlayerConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Width = 64
	cfg.AudioOffsetMs = 250

	pc := cfg.ToPlayerConfig("clip.mp4")
	if pc.VideoPath != "clip.mp4" {
		t.Errorf("expected path clip.mp4, got %s", pc.VideoPath)
	}
	if pc.Width != 64 || pc.MaxWidth != 120 {
		t.Errorf("unexpected widths: %d/%d", pc.Width, pc.MaxWidth)
	}
	if pc.Preroll != 2*time.Second {
		t.Errorf("expected 2s preroll, got %s", pc.Preroll)
	}
	if pc.AudioOffset != 250*time.Millisecond {
		t.Errorf("expected 250ms offset, got %s", pc.AudioOffset)
	}
	if pc.DebugEvery != 0 {
		t.Errorf("debug frames must be off unless debug is enabled, got every %d", pc.DebugEvery)
	}

	cfg.Debug = true
	if pc := cfg.ToPlayerConfig("clip.mp4"); pc.DebugEvery != 30 {
		t.Errorf("expected debug every 30 frames, got %d", pc.DebugEvery)
	}

	if cfg.AudioStopTimeout() != time.Second {
		t.Errorf("expected 1s stop timeout, got %s", cfg.AudioStopTimeout())
	}
}

func TestLoadFromFile_Summary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asciiplay.yaml")
	if err := os.WriteFile(path, []byte("summary: reports/last.md\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SummaryPath != "reports/last.md" {
		t.Errorf("expected summary path reports/last.md, got %q", cfg.SummaryPath)
	}
	if Defaults().SummaryPath != "" {
		t.Error("summary should be off by default")
	}
}
