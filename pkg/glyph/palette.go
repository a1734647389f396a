// Package glyph maps pixel values to terminal characters and 256-color codes.
package glyph

import (
	"errors"
	"math"
)

// DefaultRamp is the character ramp ordered from darkest to brightest.
const DefaultRamp = " .:-=+*#%@"

// Color cube constants for the xterm 256-color palette.
const (
	CubeOffset = 16  // First index of the 6x6x6 color cube
	CubeMax    = 231 // Last index of the 6x6x6 color cube
	bucketSize = 51  // 255 / 5: channel width of one cube step
)

// ErrEmptyRamp is returned when a palette is built from an empty ramp.
var ErrEmptyRamp = errors.New("glyph: character ramp is empty")

// Palette maps luminance to characters and RGB to color indices.
type Palette struct {
	ramp []rune
}

// NewPalette creates a palette from a ramp ordered darkest to brightest.
// An empty ramp selects DefaultRamp.
func NewPalette(ramp string) *Palette {
	if ramp == "" {
		ramp = DefaultRamp
	}
	return &Palette{ramp: []rune(ramp)}
}

// ParsePalette is like NewPalette but rejects an empty ramp.
func ParsePalette(ramp string) (*Palette, error) {
	if len([]rune(ramp)) == 0 {
		return nil, ErrEmptyRamp
	}
	return NewPalette(ramp), nil
}

// Size returns the number of characters in the ramp.
func (p *Palette) Size() int {
	return len(p.ramp)
}

// Ramp returns the characters of the palette as a string.
func (p *Palette) Ramp() string {
	return string(p.ramp)
}

// CharFor returns ramp[floor(luminance*(N-1))].
// Luminance is clamped to [0,1]; NaN is treated as 0.
func (p *Palette) CharFor(luminance float64) rune {
	n := len(p.ramp)
	if math.IsNaN(luminance) || luminance < 0 {
		luminance = 0
	} else if luminance > 1 {
		luminance = 1
	}
	idx := int(math.Floor(luminance * float64(n-1)))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return p.ramp[idx]
}

// ColorFor quantizes an RGB triple into the 6x6x6 color cube.
// The result is always in [CubeOffset, CubeMax].
func ColorFor(r, g, b int) int {
	return CubeOffset + 36*bucket(r) + 6*bucket(g) + bucket(b)
}

// bucket maps a channel value to 0..5. 255/51 is exactly 5.
func bucket(c int) int {
	if c < 0 {
		c = 0
	} else if c > 255 {
		c = 255
	}
	return c / bucketSize
}

// Luminance returns the BT.601 weighted luminance of an RGB triple normalized to [0,1].
func Luminance(r, g, b int) float64 {
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}

// CubeRGB returns the representative RGB value of a cube color index.
// Indices outside the cube are clamped to it.
func CubeRGB(index int) (r, g, b uint8) {
	if index < CubeOffset {
		index = CubeOffset
	} else if index > CubeMax {
		index = CubeMax
	}
	i := index - CubeOffset
	return cubeLevel(i / 36), cubeLevel((i / 6) % 6), cubeLevel(i % 6)
}

// cubeLevel follows the xterm cube levels: 0, 95, 135, 175, 215, 255.
func cubeLevel(v int) uint8 {
	if v == 0 {
		return 0
	}
	return uint8(55 + v*40)
}
