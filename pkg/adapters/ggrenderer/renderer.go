// Package ggrenderer rasterizes glyph grids into images using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/asciiplay/pkg/glyph"
	"github.com/user/asciiplay/pkg/pipeline"
	"github.com/user/asciiplay/pkg/ports"
)

// Default cell size, matching gg's built-in 7x13 bitmap face with padding.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Renderer implements ports.Rasterizer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Rasterize draws each glyph centered in its cell, in its xterm-256 color,
// on a black background. Non-positive cell sizes fall back to the defaults.
func (r *Renderer) Rasterize(grid pipeline.GlyphGrid, cellWidth, cellHeight int) image.Image {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if cellHeight <= 0 {
		cellHeight = DefaultCellHeight
	}

	w, h := grid.Width()*cellWidth, grid.Height()*cellHeight
	if w == 0 || h == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(color.Black)
	dc.Clear()

	for y, row := range grid.Rows {
		for x, g := range row {
			if g.Char == ' ' {
				continue
			}
			dc.SetColor(CellColor(g))
			cx := float64(x*cellWidth) + float64(cellWidth)/2
			cy := float64(y*cellHeight) + float64(cellHeight)/2
			dc.DrawStringAnchored(string(g.Char), cx, cy, 0.5, 0.5)
		}
	}

	return dc.Image()
}

// CellColor returns the display color of a glyph.
func CellColor(g pipeline.Glyph) color.RGBA {
	r, gr, b := glyph.CubeRGB(g.Color)
	return color.RGBA{R: r, G: gr, B: b, A: 255}
}

// EncodePNG encodes an image as PNG.
func (r *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Ensure Renderer implements ports.Rasterizer
var _ ports.Rasterizer = (*Renderer)(nil)
