package render

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/user/asciiplay/pkg/pipeline"
)

// Resample selects the downsampling filter.
type Resample string

const (
	// ResampleArea averages every source pixel covered by a cell.
	ResampleArea Resample = "area"
	// ResampleNearest picks one source pixel per cell.
	ResampleNearest Resample = "nearest"
	// ResampleBilinear uses an approximate bilinear filter.
	ResampleBilinear Resample = "bilinear"
	// ResampleCatmullRom uses the Catmull-Rom cubic kernel.
	ResampleCatmullRom Resample = "catmullrom"
)

// ParseResample validates a resample method name. An empty name selects ResampleArea.
func ParseResample(s string) (Resample, error) {
	switch Resample(s) {
	case "":
		return ResampleArea, nil
	case ResampleArea, ResampleNearest, ResampleBilinear, ResampleCatmullRom:
		return Resample(s), nil
	default:
		return "", fmt.Errorf("unknown resample method %q (area, nearest, bilinear, catmullrom)", s)
	}
}

// Downsample scales frame to width x height using the given method.
func Downsample(frame pipeline.RawFrame, width, height int, method Resample) pipeline.RawFrame {
	if frame.Width == width && frame.Height == height {
		return frame
	}

	var scaler draw.Scaler
	switch method {
	case ResampleNearest:
		scaler = draw.NearestNeighbor
	case ResampleBilinear:
		scaler = draw.ApproxBiLinear
	case ResampleCatmullRom:
		scaler = draw.CatmullRom
	default:
		return boxDownsample(frame, width, height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	scaler.Scale(dst, dst.Bounds(), frame, frame.Bounds(), draw.Src, nil)

	out := pipeline.NewRawFrame(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := dst.PixOffset(x, y)
			out.SetRGB(x, y, dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2])
		}
	}
	return out
}

// boxDownsample averages the source rectangle each destination cell covers.
// When upscaling, a cell covers at least one source pixel.
func boxDownsample(frame pipeline.RawFrame, width, height int) pipeline.RawFrame {
	out := pipeline.NewRawFrame(width, height)

	for y := 0; y < height; y++ {
		y0, y1 := span(y, height, frame.Height)
		for x := 0; x < width; x++ {
			x0, x1 := span(x, width, frame.Width)

			var r, g, b, n uint
			for sy := y0; sy < y1; sy++ {
				i := (sy*frame.Width + x0) * 3
				for sx := x0; sx < x1; sx++ {
					r += uint(frame.Pix[i])
					g += uint(frame.Pix[i+1])
					b += uint(frame.Pix[i+2])
					i += 3
				}
				n += uint(x1 - x0)
			}
			out.SetRGB(x, y, uint8(r/n), uint8(g/n), uint8(b/n))
		}
	}

	return out
}

// span returns the half-open source range [lo, hi) covered by destination cell i of n.
func span(i, n, size int) (lo, hi int) {
	lo = i * size / n
	hi = (i + 1) * size / n
	if hi <= lo {
		hi = lo + 1
	}
	if hi > size {
		hi = size
		if lo >= hi {
			lo = hi - 1
		}
	}
	return lo, hi
}
