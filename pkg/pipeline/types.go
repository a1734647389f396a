package pipeline

import (
	"image"
	"image/color"
	"path/filepath"
	"time"
)

// =============================================================================
// Frame Types
// =============================================================================

// RawFrame is one decoded video frame as packed RGB24, row-major.
// It is consumed by the render stage and discarded afterwards.
type RawFrame struct {
	Width  int
	Height int
	Pix    []uint8 // 3 bytes per pixel: R, G, B
}

// NewRawFrame allocates a black frame of the given size.
func NewRawFrame(width, height int) RawFrame {
	return RawFrame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Valid reports whether the frame has positive dimensions and a pixel buffer
// large enough to hold them.
func (f RawFrame) Valid() bool {
	return f.Width > 0 && f.Height > 0 && len(f.Pix) >= f.Width*f.Height*3
}

// RGBAt returns the channel values of the pixel at (x, y).
func (f RawFrame) RGBAt(x, y int) (r, g, b uint8) {
	i := (y*f.Width + x) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// SetRGB sets the pixel at (x, y).
func (f RawFrame) SetRGB(x, y int, r, g, b uint8) {
	i := (y*f.Width + x) * 3
	f.Pix[i], f.Pix[i+1], f.Pix[i+2] = r, g, b
}

// ColorModel implements image.Image.
func (f RawFrame) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (f RawFrame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// At implements image.Image.
func (f RawFrame) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return color.RGBA{}
	}
	r, g, b := f.RGBAt(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// =============================================================================
// Glyph Types
// =============================================================================

// Glyph is one terminal cell: a character and a 256-color palette index.
type Glyph struct {
	Char  rune
	Color int // 16..231
}

// GlyphGrid is the rendered form of a frame, ordered row-major.
type GlyphGrid struct {
	Rows [][]Glyph
}

// Width returns the number of glyphs per row.
func (g GlyphGrid) Width() int {
	if len(g.Rows) == 0 {
		return 0
	}
	return len(g.Rows[0])
}

// Height returns the number of rows.
func (g GlyphGrid) Height() int {
	return len(g.Rows)
}

// =============================================================================
// Session Types
// =============================================================================

// VideoInfo describes an opened video source.
type VideoInfo struct {
	Path        string
	Width       int
	Height      int
	FrameRate   float64 // Reported frame rate; may be 0 when unknown
	TotalFrames int     // Reported frame count; may be 0 when unknown
	Codec       string
}

// Name returns the base file name of the video.
func (v VideoInfo) Name() string {
	return filepath.Base(v.Path)
}

// Duration returns the length of the video in seconds.
func (v VideoInfo) Duration() float64 {
	if v.FrameRate <= 0 {
		return 0
	}
	return float64(v.TotalFrames) / v.FrameRate
}

// PlaybackState is the mutable record owned by the scheduler for one session.
type PlaybackState struct {
	FrameIndex    int
	SessionStart  time.Time
	FrameInterval time.Duration
	TotalFrames   int
}

// Status is the per-frame progress snapshot handed to the emit step.
type Status struct {
	Frame       int     // Frames emitted so far, including the current one
	TotalFrames int     // 0 when unknown
	Position    float64 // Media position in seconds (Frame / FrameRate)
	Duration    float64 // Media duration in seconds
	Progress    float64 // Frame / TotalFrames, 0 when TotalFrames is unknown
	ActualFPS   float64 // Frames per wall-clock second since session start
}

// =============================================================================
// Render Stage Types
// =============================================================================

// RenderInput contains one frame and the character width to render it at.
type RenderInput struct {
	Frame RawFrame
	Width int
}

// =============================================================================
// Banner Stage Types
// =============================================================================

// BannerInput contains what the session banner describes.
type BannerInput struct {
	Info      VideoInfo
	CharWidth int  // Rendered width in characters
	Audio     bool // Whether an audio sidecar will be attempted
}

// BannerResult is the banner as printable lines.
type BannerResult struct {
	Lines []string
}
