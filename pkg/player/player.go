// Package player coordinates one playback session: open, describe, play, report.
package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/user/asciiplay/pkg/pipeline"
	"github.com/user/asciiplay/pkg/playback"
	"github.com/user/asciiplay/pkg/ports"
	"github.com/user/asciiplay/pkg/progress"
	"github.com/user/asciiplay/pkg/stages/render"
)

// ErrFileNotFound is returned when the video path does not exist.
var ErrFileNotFound = errors.New("player: video file not found")

// Config contains all configuration for a playback session.
type Config struct {
	VideoPath string

	// Width is the explicit character width; 0 derives it from the terminal.
	Width    int
	MaxWidth int

	// DefaultFPS replaces a missing or invalid source frame rate.
	DefaultFPS    float64
	Preroll       time.Duration
	ProgressWidth int

	Audio       bool
	AudioOffset time.Duration

	// DebugEvery saves every Nth frame to the debug sink; 0 disables it.
	DebugEvery int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		MaxWidth:      120,
		DefaultFPS:    playback.DefaultFrameRate,
		Preroll:       2 * time.Second,
		ProgressWidth: progress.DefaultBarWidth,
		Audio:         true,
		AudioOffset:   100 * time.Millisecond,
	}
}

// Player runs playback sessions.
type Player struct {
	opener      ports.VideoOpener
	renderStage pipeline.Stage[pipeline.RenderInput, pipeline.GlyphGrid]
	bannerStage pipeline.Stage[pipeline.BannerInput, pipeline.BannerResult]
	scheduler   *playback.Scheduler
	audio       ports.AudioPlayer
	screen      ports.Screen
	clock       ports.Clock
	fs          ports.FileSystem
	sink        ports.DebugSink
	logger      ports.Logger
}

// New creates a new Player.
func New(
	opener ports.VideoOpener,
	renderStage pipeline.Stage[pipeline.RenderInput, pipeline.GlyphGrid],
	bannerStage pipeline.Stage[pipeline.BannerInput, pipeline.BannerResult],
	audio ports.AudioPlayer,
	screen ports.Screen,
	clock ports.Clock,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Player {
	return &Player{
		opener:      opener,
		renderStage: renderStage,
		bannerStage: bannerStage,
		scheduler:   playback.New(clock, logger),
		audio:       audio,
		screen:      screen,
		clock:       clock,
		fs:          fs,
		sink:        sink,
		logger:      logger,
	}
}

// Summary describes a finished session.
type Summary struct {
	Video        pipeline.VideoInfo
	CharWidth    int
	FrameRate    float64
	Frames       int
	State        playback.State
	Elapsed      time.Duration
	ActualFPS    float64
	AudioStarted bool
}

// sessionRecord is the debug sink's view of a session.
type sessionRecord struct {
	Path        string  `json:"path"`
	Codec       string  `json:"codec,omitempty"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FrameRate   float64 `json:"frameRate"`
	TotalFrames int     `json:"totalFrames"`
	CharWidth   int     `json:"charWidth"`
	CharHeight  int     `json:"charHeight"`
	DebugEvery  int     `json:"debugEvery"`
}

// Play runs one session until it finishes, is cancelled, or fails.
// Every error is reported through the logger before it is returned, and the
// source, audio and cursor are released before Play returns.
func (p *Player) Play(ctx context.Context, config Config) (Summary, error) {
	path := config.VideoPath

	// 1. The file must exist before anything is opened
	exists, err := p.fs.Exists(path)
	if err != nil {
		p.logger.Error("Error: %s", err)
		return Summary{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !exists {
		p.logger.Error("Error: Video file '%s' not found.", path)
		return Summary{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	// 2. Open the decoder
	src, err := p.opener.Open(ctx, path)
	if err != nil {
		p.logger.Error("Error: Could not open video file '%s'.", path)
		return Summary{}, fmt.Errorf("open %s: %w", path, err)
	}

	info := src.Info()
	p.logger.Debug("Opened %s: %dx%d, %.3f fps, %d frames", info.Name(), info.Width, info.Height, info.FrameRate, info.TotalFrames)

	frameRate := info.FrameRate
	if frameRate <= 0 || math.IsNaN(frameRate) || math.IsInf(frameRate, 0) {
		fallback := playback.NormalizeFrameRate(config.DefaultFPS)
		p.logger.Warn("Frame rate %.3f is invalid, using %.0f", frameRate, fallback)
		frameRate = fallback
		info.FrameRate = fallback
	}

	// 3. Character width
	width := p.charWidth(config)

	summary := Summary{
		Video:     info,
		CharWidth: width,
		FrameRate: frameRate,
	}

	// 4. Banner
	banner, err := p.bannerStage.Execute(ctx, pipeline.BannerInput{
		Info:      info,
		CharWidth: width,
		Audio:     config.Audio && p.audio != nil,
	})
	if err != nil {
		src.Close()
		p.logger.Error("Error: %s", err)
		return summary, fmt.Errorf("banner stage: %w", err)
	}
	for _, line := range banner.Lines {
		p.screen.Println(line)
	}

	if p.sink.Enabled() {
		p.saveSession(info, width, config.DebugEvery)
	}

	// 5. Pre-roll so the banner can be read
	if config.Preroll > 0 {
		p.clock.Sleep(ctx, config.Preroll)
	}

	// 6. Play
	sess := playback.Session{
		Source:      src,
		FrameRate:   frameRate,
		TotalFrames: info.TotalFrames,
		Render: func(frame pipeline.RawFrame) (pipeline.GlyphGrid, error) {
			return p.renderStage.Execute(ctx, pipeline.RenderInput{Frame: frame, Width: width})
		},
		Emit: func(grid pipeline.GlyphGrid, status pipeline.Status) error {
			p.saveFrame(config.DebugEvery, status.Frame, grid)
			return p.screen.Present(render.EncodeANSI(grid), progress.StatusLine(status, config.ProgressWidth))
		},
		AudioPath:   path,
		AudioOffset: config.AudioOffset,
		Screen:      p.screen,
	}
	if config.Audio && p.audio != nil {
		sess.Audio = p.audio
	}

	result, err := p.scheduler.Run(ctx, sess)

	summary.Frames = result.Frames
	summary.State = result.State
	summary.Elapsed = result.Elapsed
	summary.ActualFPS = result.ActualFPS
	summary.AudioStarted = result.AudioStarted

	// 7. Report
	if result.State == playback.Cancelled {
		p.screen.Println("")
		p.logger.Info("Playback stopped.")
	}
	if err != nil {
		p.logger.Error("Error: %s", err)
	}
	p.logger.Info("Finished playing %d frames", result.Frames)

	if err != nil {
		return summary, fmt.Errorf("playback: %w", err)
	}
	return summary, nil
}

// charWidth returns the explicit width, or the terminal width less a
// two-column margin capped at MaxWidth, never less than one.
func (p *Player) charWidth(config Config) int {
	if config.Width > 0 {
		return config.Width
	}

	maxWidth := config.MaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultConfig().MaxWidth
	}

	term := p.screen.Width()
	width := min(term-2, maxWidth)
	if width < 1 {
		width = 1
	}
	p.logger.Debug("Character width: %d (terminal %d)", width, term)
	return width
}

func (p *Player) saveSession(info pipeline.VideoInfo, width, debugEvery int) {
	record := sessionRecord{
		Path:        info.Path,
		Codec:       info.Codec,
		Width:       info.Width,
		Height:      info.Height,
		FrameRate:   info.FrameRate,
		TotalFrames: info.TotalFrames,
		CharWidth:   width,
		CharHeight:  render.TargetHeight(info.Width, info.Height, width),
		DebugEvery:  debugEvery,
	}
	if data, err := json.MarshalIndent(record, "", "  "); err == nil {
		p.sink.SaveSessionJSON(data)
	}
}

// saveFrame writes every Nth frame to the debug sink. Failures are logged only.
func (p *Player) saveFrame(every, index int, grid pipeline.GlyphGrid) {
	if every <= 0 || !p.sink.Enabled() || index%every != 0 {
		return
	}
	if err := p.sink.SaveGlyphFrame(index, grid); err != nil {
		p.logger.Warn("Failed to save debug frame %d: %s", index, err)
	}
}
