// Package summarizer provides summary generation for playback sessions.
package summarizer

import "time"

// Summary contains all data collected during a playback session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Source video
	Video VideoInfo

	// Playback settings
	Settings Settings

	// Playback results
	Result ResultInfo
}

// VideoInfo describes the source video.
type VideoInfo struct {
	Path        string
	Codec       string
	Width       int
	Height      int
	FrameRate   float64
	TotalFrames int
}

// Settings contains the playback configuration.
type Settings struct {
	CharWidth  int
	CharHeight int
	Palette    string
	Resample   string
	Audio      bool
}

// ResultInfo contains the outcome of a session.
type ResultInfo struct {
	State        string
	Frames       int
	Elapsed      time.Duration
	ActualFPS    float64
	AudioStarted bool
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithVideo sets source video information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// WithSettings sets playback settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithResult sets the session outcome.
func (b *Builder) WithResult(result ResultInfo) *Builder {
	b.summary.Result = result
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
