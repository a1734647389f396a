package ports

import (
	"image"

	"github.com/user/asciiplay/pkg/pipeline"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving rendered frames for inspection after a session.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSessionJSON saves the probed video metadata and session settings as JSON.
	SaveSessionJSON(data []byte) error

	// SaveGlyphFrame saves a rendered glyph grid as ANSI text and as an image preview.
	SaveGlyphFrame(index int, grid pipeline.GlyphGrid) error
}

// Rasterizer turns glyph grids into images for previews.
type Rasterizer interface {
	// Rasterize draws the grid with one cellWidth x cellHeight box per glyph.
	Rasterize(grid pipeline.GlyphGrid, cellWidth, cellHeight int) image.Image

	// EncodePNG encodes an image as PNG.
	EncodePNG(img image.Image) ([]byte, error)
}
