package summarizer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Playback Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.Format(time.RFC3339))

	b.WriteString("## Video\n\n")
	b.WriteString("| Item | Value |\n|------|-------|\n")
	fmt.Fprintf(&b, "| File | %s |\n", escapeCell(filepath.Base(s.Video.Path)))
	if s.Video.Codec != "" {
		fmt.Fprintf(&b, "| Codec | %s |\n", s.Video.Codec)
	}
	fmt.Fprintf(&b, "| Resolution | %dx%d |\n", s.Video.Width, s.Video.Height)
	fmt.Fprintf(&b, "| Frame Rate | %.2f fps |\n", s.Video.FrameRate)
	if s.Video.TotalFrames > 0 {
		fmt.Fprintf(&b, "| Total Frames | %d |\n", s.Video.TotalFrames)
	} else {
		b.WriteString("| Total Frames | N/A |\n")
	}

	b.WriteString("\n## Settings\n\n")
	b.WriteString("| Item | Value |\n|------|-------|\n")
	fmt.Fprintf(&b, "| Grid | %dx%d |\n", s.Settings.CharWidth, s.Settings.CharHeight)
	if s.Settings.Palette != "" {
		fmt.Fprintf(&b, "| Palette | `%s` |\n", escapeCell(s.Settings.Palette))
	}
	if s.Settings.Resample != "" {
		fmt.Fprintf(&b, "| Resample | %s |\n", s.Settings.Resample)
	}
	fmt.Fprintf(&b, "| Audio | %s |\n", onOff(s.Settings.Audio))

	b.WriteString("\n## Result\n\n")
	b.WriteString("| Item | Value |\n|------|-------|\n")
	fmt.Fprintf(&b, "| State | %s |\n", s.Result.State)
	fmt.Fprintf(&b, "| Frames Played | %d |\n", s.Result.Frames)
	fmt.Fprintf(&b, "| Elapsed | %d ms |\n", s.Result.Elapsed.Milliseconds())
	fmt.Fprintf(&b, "| Actual FPS | %.2f |\n", s.Result.ActualFPS)
	fmt.Fprintf(&b, "| Audio Started | %s |\n", yesNo(s.Result.AudioStarted))

	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func onOff(v bool) string {
	if v {
		return "Enabled"
	}
	return "Disabled"
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
