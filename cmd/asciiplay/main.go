// Package main provides the CLI entry point for asciiplay.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/asciiplay/pkg/adapters/ffmpegsource"
	"github.com/user/asciiplay/pkg/adapters/ffplayaudio"
	"github.com/user/asciiplay/pkg/adapters/filesink"
	"github.com/user/asciiplay/pkg/adapters/ggrenderer"
	"github.com/user/asciiplay/pkg/adapters/logger"
	"github.com/user/asciiplay/pkg/adapters/nullsink"
	"github.com/user/asciiplay/pkg/adapters/osfilesystem"
	"github.com/user/asciiplay/pkg/adapters/systemclock"
	"github.com/user/asciiplay/pkg/adapters/terminal"
	"github.com/user/asciiplay/pkg/config"
	"github.com/user/asciiplay/pkg/glyph"
	"github.com/user/asciiplay/pkg/player"
	"github.com/user/asciiplay/pkg/ports"
	"github.com/user/asciiplay/pkg/stages/banner"
	"github.com/user/asciiplay/pkg/stages/render"
	"github.com/user/asciiplay/pkg/summarizer"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "asciiplay",
		Usage:     l10n.T("Play videos in the terminal as colored ASCII art"),
		UsageText: "asciiplay [options] [video-file]",
		Version:   version,
		Flags:     flags(),
		Action:    runPlay,
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		// Rendering
		&cli.IntFlag{
			Name:     "width",
			Aliases:  []string{"w"},
			Usage:    l10n.T("ASCII width in characters (default: terminal width)"),
			Category: l10n.T("Rendering"),
		},
		&cli.StringFlag{
			Name:     "palette",
			Usage:    l10n.T("Character ramp from darkest to brightest"),
			Category: l10n.T("Rendering"),
		},
		&cli.StringFlag{
			Name:     "resample",
			Usage:    l10n.T("Downsampling filter (area, nearest, bilinear, catmullrom)"),
			Category: l10n.T("Rendering"),
		},

		// Audio and tools
		&cli.BoolFlag{
			Name:     "no-audio",
			Usage:    l10n.T("Play without audio"),
			Category: l10n.T("Audio and Tools"),
		},
		&cli.StringFlag{
			Name:     "ffmpeg",
			Usage:    l10n.T("Path to ffmpeg (falls back to FFMPEG_PATH env, then PATH)"),
			Category: l10n.T("Audio and Tools"),
		},
		&cli.StringFlag{
			Name:     "ffprobe",
			Usage:    l10n.T("Path to ffprobe (falls back to FFPROBE_PATH env, then PATH)"),
			Category: l10n.T("Audio and Tools"),
		},
		&cli.StringFlag{
			Name:     "ffplay",
			Usage:    l10n.T("Path to ffplay (falls back to FFPLAY_PATH env, then PATH)"),
			Category: l10n.T("Audio and Tools"),
		},

		// Configuration
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    l10n.T("YAML configuration file"),
			Category: l10n.T("Configuration"),
		},
		&cli.StringFlag{
			Name:     "summary",
			Usage:    l10n.T("Output playback summary to file (Markdown format)"),
			Category: l10n.T("Configuration"),
		},

		// Debug
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Enable debug output"),
			Category: l10n.T("Debug"),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output"),
			Category: l10n.T("Debug"),
		},
		&cli.IntFlag{
			Name:     "debug-every",
			Usage:    l10n.T("Save every Nth frame to the debug directory"),
			Category: l10n.T("Debug"),
		},

		// Logging
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
	}
}

// runPlay plays one video.
func runPlay(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(cfg.LogLevelValue())
	}

	path, err := resolvePath(c.Args().First(), os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	if path == "" {
		log.Error("No video file specified.")
		return nil
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go watchSignals(ctx, sigCh, cancel, log)

	// Create adapters
	fs := osfilesystem.New()
	opener := ffmpegsource.New(ffmpegsource.Options{
		FFmpegPath:  cfg.FFmpegPath,
		FFprobePath: cfg.FFprobePath,
	}, log)
	audio := ffplayaudio.New(ffplayaudio.Options{
		FFplayPath:  cfg.FFplayPath,
		StopTimeout: cfg.AudioStopTimeout(),
	}, log)

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, ggrenderer.New())
		log.Info("Debug output enabled: %s", cfg.DebugDir)
	} else {
		sink = nullsink.New()
	}

	// Create stages
	renderStage, err := newRenderStage(cfg, log)
	if err != nil {
		return err
	}
	bannerStage := banner.NewStage(log)

	p := player.New(
		opener,
		renderStage,
		bannerStage,
		audio,
		terminal.New(),
		systemclock.New(),
		fs,
		sink,
		log,
	)

	summary, err := p.Play(ctx, cfg.ToPlayerConfig(path))

	if cfg.SummaryPath != "" && summary.CharWidth > 0 {
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs)
		if werr := writer.Write(cfg.SummaryPath, buildSummary(cfg, summary)); werr != nil {
			log.Warn("Failed to write summary: %s", werr)
		} else {
			log.Info("Summary saved to %s", cfg.SummaryPath)
		}
	}

	// The player has already reported its errors.
	switch {
	case err == nil:
		return nil
	case errors.Is(err, player.ErrFileNotFound), errors.Is(err, ffmpegsource.ErrUnopenableSource):
		return nil
	default:
		return cli.Exit("", 1)
	}
}

// watchSignals cancels playback on the first signal and then restores the
// default handlers, so a second Ctrl+C terminates a stuck teardown.
func watchSignals(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc, log ports.Logger) {
	select {
	case <-sigCh:
		signal.Stop(sigCh)
		log.Debug("Interrupted, stopping playback...")
		cancel()
	case <-ctx.Done():
	}
}

func newRenderStage(cfg config.Config, log ports.Logger) (*render.Stage, error) {
	palette, err := glyph.ParsePalette(cfg.Palette)
	if err != nil {
		return nil, err
	}
	resample, err := render.ParseResample(cfg.Resample)
	if err != nil {
		return nil, err
	}
	return render.NewStage(palette, resample, log), nil
}

// buildConfig loads the configuration file, if any, and applies flag overrides.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("palette") {
		cfg.Palette = c.String("palette")
	}
	if c.IsSet("resample") {
		cfg.Resample = c.String("resample")
	}
	if c.Bool("no-audio") {
		cfg.Audio = false
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("ffprobe") {
		cfg.FFprobePath = c.String("ffprobe")
	}
	if c.IsSet("ffplay") {
		cfg.FFplayPath = c.String("ffplay")
	}
	if c.IsSet("summary") {
		cfg.SummaryPath = c.String("summary")
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("debug-every") {
		cfg.DebugEvery = c.Int("debug-every")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resolvePath returns arg, or prompts for a path on in when arg is empty.
func resolvePath(arg string, in io.Reader, out io.Writer) (string, error) {
	if arg != "" {
		return cleanPath(arg), nil
	}

	fmt.Fprint(out, l10n.T("Enter video file path: "))
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read path: %w", err)
	}
	return cleanPath(line), nil
}

// cleanPath trims whitespace and one pair of surrounding quotes, as left by
// drag-and-drop into a terminal.
func cleanPath(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}

func buildSummary(cfg config.Config, s player.Summary) *summarizer.Summary {
	return summarizer.NewBuilder().
		WithVideo(summarizer.VideoInfo{
			Path:        s.Video.Path,
			Codec:       s.Video.Codec,
			Width:       s.Video.Width,
			Height:      s.Video.Height,
			FrameRate:   s.FrameRate,
			TotalFrames: s.Video.TotalFrames,
		}).
		WithSettings(summarizer.Settings{
			CharWidth:  s.CharWidth,
			CharHeight: render.TargetHeight(s.Video.Width, s.Video.Height, s.CharWidth),
			Palette:    cfg.Palette,
			Resample:   cfg.Resample,
			Audio:      cfg.Audio,
		}).
		WithResult(summarizer.ResultInfo{
			State:        s.State.String(),
			Frames:       s.Frames,
			Elapsed:      s.Elapsed,
			ActualFPS:    s.ActualFPS,
			AudioStarted: s.AudioStarted,
		}).
		Build()
}
