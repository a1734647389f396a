package render

import (
	"strconv"
	"strings"

	"github.com/user/asciiplay/pkg/pipeline"
)

const (
	ansiReset  = "\033[0m"
	ansiFgCode = "\033[38;5;"
)

// EncodeANSI serializes a grid as 256-color escape sequences.
// Every glyph carries its own color code, each row ends with a reset, and
// rows are joined by newlines without a trailing newline.
func EncodeANSI(grid pipeline.GlyphGrid) string {
	var sb strings.Builder
	// "\033[38;5;NNNm" + up to 4 bytes of UTF-8 per glyph.
	sb.Grow(grid.Height() * (grid.Width()*15 + len(ansiReset) + 1))

	var buf [8]byte
	for y, row := range grid.Rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, g := range row {
			sb.WriteString(ansiFgCode)
			sb.Write(strconv.AppendInt(buf[:0], int64(g.Color), 10))
			sb.WriteByte('m')
			sb.WriteRune(g.Char)
		}
		sb.WriteString(ansiReset)
	}
	return sb.String()
}

// EncodePlain serializes a grid as characters only, for terminals without color.
func EncodePlain(grid pipeline.GlyphGrid) string {
	var sb strings.Builder
	sb.Grow(grid.Height() * (grid.Width() + 1))
	for y, row := range grid.Rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, g := range row {
			sb.WriteRune(g.Char)
		}
	}
	return sb.String()
}
