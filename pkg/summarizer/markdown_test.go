package summarizer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/asciiplay/pkg/mocks"
)

func sampleSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Video: VideoInfo{
			Path:        "/videos/clip.mp4",
			Codec:       "h264",
			Width:       1920,
			Height:      1080,
			FrameRate:   29.97,
			TotalFrames: 2730,
		},
		Settings: Settings{
			CharWidth:  100,
			CharHeight: 28,
			Palette:    " .:-=+*#%@",
			Resample:   "area",
			Audio:      true,
		},
		Result: ResultInfo{
			State:        "cancelled",
			Frames:       120,
			Elapsed:      4 * time.Second,
			ActualFPS:    30,
			AudioStarted: true,
		},
	}
}

func TestMarkdownFormatter_Format(t *testing.T) {
	result := NewMarkdownFormatter().Format(sampleSummary())

	checks := []string{
		"# Playback Summary",
		"2024-01-15T10:30:00Z",
		"| File | clip.mp4 |",
		"| Codec | h264 |",
		"| Resolution | 1920x1080 |",
		"| Frame Rate | 29.97 fps |",
		"| Total Frames | 2730 |",
		"| Grid | 100x28 |",
		"| Resample | area |",
		"| Audio | Enabled |",
		"| State | cancelled |",
		"| Frames Played | 120 |",
		"| Elapsed | 4000 ms |",
		"| Actual FPS | 30.00 |",
		"| Audio Started | Yes |",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Format_UnknownTotal(t *testing.T) {
	s := sampleSummary()
	s.Video.TotalFrames = 0
	s.Video.Codec = ""
	s.Settings.Audio = false

	result := NewMarkdownFormatter().Format(s)

	if !strings.Contains(result, "| Total Frames | N/A |") {
		t.Error("expected N/A for unknown total frames")
	}
	if strings.Contains(result, "| Codec |") {
		t.Error("codec row should be omitted when unknown")
	}
	if !strings.Contains(result, "| Audio | Disabled |") {
		t.Error("expected audio disabled")
	}
}

func TestMarkdownFormatter_EscapesPipes(t *testing.T) {
	s := sampleSummary()
	s.Settings.Palette = " |#"

	result := NewMarkdownFormatter().Format(s)

	if !strings.Contains(result, "` \\|#`") {
		t.Errorf("expected escaped palette, got:\n%s", result)
	}
}

func TestFormatFunc(t *testing.T) {
	f := FormatFunc(func(s *Summary) string { return s.Result.State })
	if got := f.Format(sampleSummary()); got != "cancelled" {
		t.Errorf("expected 'cancelled', got %q", got)
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(*Summary) string { return "content" }), fs)

	if err := w.Write("out/summary.md", sampleSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := fs.ReadFile("out/summary.md")
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("expected 'content', got %q", data)
	}
	if ok, _ := fs.Exists("out"); !ok {
		t.Error("parent directory should be created")
	}
}

func TestWriter_Write_MkdirError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.MkdirAllFunc = func(string) error { return errors.New("denied") }
	w := NewWriter(NewMarkdownFormatter(), fs)

	if err := w.Write("out/summary.md", sampleSummary()); err == nil {
		t.Error("expected error when directory cannot be created")
	}
}
