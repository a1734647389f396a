// Package render implements the frame-to-glyph rendering stage.
package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/asciiplay/pkg/glyph"
	"github.com/user/asciiplay/pkg/pipeline"
	"github.com/user/asciiplay/pkg/ports"
)

var (
	// ErrInvalidFrame is returned for zero-sized frames or truncated pixel buffers.
	ErrInvalidFrame = errors.New("render: invalid frame")

	// ErrInvalidWidth is returned when the target character width is not positive.
	ErrInvalidWidth = errors.New("render: target width must be positive")
)

// Stage converts raw frames into colored glyph grids.
type Stage struct {
	palette  *glyph.Palette
	resample Resample
	logger   ports.Logger
}

// NewStage creates a new render stage.
// A nil palette selects the default ramp; an empty resample selects ResampleArea.
func NewStage(palette *glyph.Palette, resample Resample, logger ports.Logger) *Stage {
	if palette == nil {
		palette = glyph.NewPalette("")
	}
	if resample == "" {
		resample = ResampleArea
	}
	return &Stage{
		palette:  palette,
		resample: resample,
		logger:   logger.WithComponent("render"),
	}
}

// Execute implements pipeline.Stage.
func (s *Stage) Execute(ctx context.Context, input pipeline.RenderInput) (pipeline.GlyphGrid, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.GlyphGrid{}, err
	}
	return s.Render(input.Frame, input.Width)
}

// Render downsamples frame to targetWidth columns and maps every cell to a glyph.
func (s *Stage) Render(frame pipeline.RawFrame, targetWidth int) (pipeline.GlyphGrid, error) {
	if frame.Width == 0 {
		return pipeline.GlyphGrid{}, fmt.Errorf("%w: zero width", ErrInvalidFrame)
	}
	if !frame.Valid() {
		return pipeline.GlyphGrid{}, fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidFrame, frame.Width, frame.Height, len(frame.Pix))
	}
	if targetWidth <= 0 {
		return pipeline.GlyphGrid{}, ErrInvalidWidth
	}

	targetHeight := TargetHeight(frame.Width, frame.Height, targetWidth)
	small := Downsample(frame, targetWidth, targetHeight, s.resample)

	rows := make([][]pipeline.Glyph, targetHeight)
	for y := 0; y < targetHeight; y++ {
		row := make([]pipeline.Glyph, targetWidth)
		for x := 0; x < targetWidth; x++ {
			r, g, b := small.RGBAt(x, y)
			ri, gi, bi := int(r), int(g), int(b)
			row[x] = pipeline.Glyph{
				Char:  s.palette.CharFor(glyph.Luminance(ri, gi, bi)),
				Color: glyph.ColorFor(ri, gi, bi),
			}
		}
		rows[y] = row
	}

	return pipeline.GlyphGrid{Rows: rows}, nil
}

// TargetHeight returns floor(frameHeight*targetWidth/frameWidth/2), at least 1.
// The halving compensates for terminal cells being about twice as tall as wide.
func TargetHeight(frameWidth, frameHeight, targetWidth int) int {
	if frameWidth <= 0 {
		return 1
	}
	h := frameHeight * targetWidth / frameWidth / 2
	if h < 1 {
		return 1
	}
	return h
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.RenderInput, pipeline.GlyphGrid] = (*Stage)(nil)
