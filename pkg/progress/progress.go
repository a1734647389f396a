// Package progress formats playback time, progress bars and the per-frame status line.
// All functions are pure.
package progress

import (
	"fmt"
	"math"
	"strings"

	"github.com/user/asciiplay/pkg/pipeline"
)

const (
	// FilledGlyph marks the elapsed part of the bar.
	FilledGlyph = "█"
	// EmptyGlyph marks the remaining part of the bar.
	EmptyGlyph = "░"
	// DefaultBarWidth is the bar width used by the status line.
	DefaultBarWidth = 30
)

// FormatTime formats seconds as MM:SS, truncating fractions.
// Minutes are not wrapped into hours. Callers pass non-negative values.
func FormatTime(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Bar renders a bracketed bar with floor(width*fraction) filled glyphs.
// The fraction is not clamped here; use Clamp first.
func Bar(fraction float64, width int) string {
	filled := int(math.Floor(float64(width) * fraction))
	return "[" + strings.Repeat(FilledGlyph, filled) + strings.Repeat(EmptyGlyph, width-filled) + "]"
}

// Clamp limits a progress fraction to [0,1]. NaN becomes 0.
func Clamp(fraction float64) float64 {
	if math.IsNaN(fraction) || fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// StatusLine formats "MM:SS/MM:SS [bar] NNN% | FPS: F.F".
func StatusLine(s pipeline.Status, barWidth int) string {
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}
	fraction := Clamp(s.Progress)
	return fmt.Sprintf("%s/%s %s %3d%% | FPS: %.1f",
		FormatTime(math.Max(s.Position, 0)),
		FormatTime(math.Max(s.Duration, 0)),
		Bar(fraction, barWidth),
		int(fraction*100),
		s.ActualFPS,
	)
}
