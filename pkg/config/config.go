// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/asciiplay/pkg/glyph"
	"github.com/user/asciiplay/pkg/player"
	"github.com/user/asciiplay/pkg/ports"
	"github.com/user/asciiplay/pkg/stages/render"
)

// Config represents the full configuration for asciiplay.
type Config struct {
	// Rendering
	MaxWidth int    `yaml:"max_width"`
	Width    int    `yaml:"width"`
	Palette  string `yaml:"palette"`
	Resample string `yaml:"resample"`

	// Playback
	DefaultFPS    float64 `yaml:"default_fps"`
	PrerollMs     int     `yaml:"preroll_ms"`
	ProgressWidth int     `yaml:"progress_width"`

	// Audio
	Audio              bool `yaml:"audio"`
	AudioOffsetMs      int  `yaml:"audio_offset_ms"`
	AudioStopTimeoutMs int  `yaml:"audio_stop_timeout_ms"`

	// External tools
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	FFplayPath  string `yaml:"ffplay_path"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Debug
	Debug      bool   `yaml:"debug"`
	DebugDir   string `yaml:"debug_dir"`
	DebugEvery int    `yaml:"debug_every"`

	// SummaryPath writes a Markdown session summary when set.
	SummaryPath string `yaml:"summary"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		MaxWidth: 120,
		Palette:  glyph.DefaultRamp,
		Resample: string(render.ResampleArea),

		DefaultFPS:    30.0,
		PrerollMs:     2000,
		ProgressWidth: 30,

		Audio:              true,
		AudioOffsetMs:      100,
		AudioStopTimeoutMs: 1000,

		LogLevel: "info",

		DebugDir:   "./debug",
		DebugEvery: 30,
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
// Keys missing from the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside playback.
func (c Config) Validate() error {
	if _, err := glyph.ParsePalette(c.Palette); err != nil {
		return err
	}
	if _, err := render.ParseResample(c.Resample); err != nil {
		return err
	}
	if !validLogLevel(c.LogLevel) {
		return fmt.Errorf("config: unknown log level %q (debug, info, warn, error, quiet)", c.LogLevel)
	}
	if c.Width < 0 {
		return fmt.Errorf("config: width must not be negative, got %d", c.Width)
	}
	if c.MaxWidth < 1 {
		return fmt.Errorf("config: max_width must be at least 1, got %d", c.MaxWidth)
	}
	if c.DebugEvery < 0 {
		return fmt.Errorf("config: debug_every must not be negative, got %d", c.DebugEvery)
	}
	return nil
}

// ToPlayerConfig converts Config to player.Config for the video at path.
func (c Config) ToPlayerConfig(path string) player.Config {
	debugEvery := 0
	if c.Debug {
		debugEvery = c.DebugEvery
	}

	return player.Config{
		VideoPath:     path,
		Width:         c.Width,
		MaxWidth:      c.MaxWidth,
		DefaultFPS:    c.DefaultFPS,
		Preroll:       time.Duration(c.PrerollMs) * time.Millisecond,
		ProgressWidth: c.ProgressWidth,
		Audio:         c.Audio,
		AudioOffset:   time.Duration(c.AudioOffsetMs) * time.Millisecond,
		DebugEvery:    debugEvery,
	}
}

// LogLevelValue returns the parsed log level.
func (c Config) LogLevelValue() ports.LogLevel {
	return ports.ParseLogLevel(c.LogLevel)
}

func validLogLevel(s string) bool {
	switch s {
	case "", "debug", "info", "warn", "error", "quiet":
		return true
	}
	return false
}

// AudioStopTimeout returns the audio stop timeout as a duration.
func (c Config) AudioStopTimeout() time.Duration {
	return time.Duration(c.AudioStopTimeoutMs) * time.Millisecond
}
