package ggrenderer

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/user/asciiplay/pkg/pipeline"
)

func testGrid() pipeline.GlyphGrid {
	return pipeline.GlyphGrid{Rows: [][]pipeline.Glyph{
		{{Char: '@', Color: 196}, {Char: ' ', Color: 16}},
		{{Char: '#', Color: 46}, {Char: '%', Color: 21}},
	}}
}

func TestRenderer_Rasterize_Size(t *testing.T) {
	r := New()

	img := r.Rasterize(testGrid(), 8, 16)
	bounds := img.Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 32 {
		t.Errorf("expected 16x32, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	img = r.Rasterize(testGrid(), 0, 0)
	bounds = img.Bounds()
	if bounds.Dx() != 2*DefaultCellWidth || bounds.Dy() != 2*DefaultCellHeight {
		t.Errorf("expected default cell size, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_Rasterize_Colors(t *testing.T) {
	r := New()
	img := r.Rasterize(testGrid(), 8, 16)

	// The blank cell stays black.
	for y := 0; y < 16; y++ {
		for x := 8; x < 16; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			if cr != 0 || cg != 0 || cb != 0 {
				t.Fatalf("blank cell pixel (%d,%d) is not black", x, y)
			}
		}
	}

	// The '@' cell contains red ink and no green or blue.
	red := false
	for y := 0; y < 16; y++ {
		for x := 0; x < 8; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			if cg != 0 || cb != 0 {
				t.Fatalf("red cell pixel (%d,%d) has green/blue", x, y)
			}
			if cr > 0 {
				red = true
			}
		}
	}
	if !red {
		t.Error("expected '@' to be drawn in red")
	}
}

func TestRenderer_Rasterize_Empty(t *testing.T) {
	img := New().Rasterize(pipeline.GlyphGrid{}, 8, 16)
	if !img.Bounds().Empty() {
		t.Errorf("expected empty image, got %v", img.Bounds())
	}
}

func TestCellColor(t *testing.T) {
	c := CellColor(pipeline.Glyph{Char: '@', Color: 196})
	if c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("expected pure red, got %+v", c)
	}
}

func TestRenderer_EncodePNG(t *testing.T) {
	r := New()
	img := r.Rasterize(testGrid(), 8, 16)

	data, err := r.EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
}

func TestRenderer_ResizeImage(t *testing.T) {
	r := New()
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))

	resized := r.ResizeImage(img, 40, 20)
	if resized.Bounds().Dx() != 40 || resized.Bounds().Dy() != 20 {
		t.Errorf("expected 40x20, got %v", resized.Bounds())
	}
}
