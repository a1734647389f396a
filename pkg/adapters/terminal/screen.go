// Package terminal presents glyph frames on an ANSI terminal.
package terminal

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/user/asciiplay/pkg/ports"
)

// DefaultWidth is used when the terminal size cannot be determined.
const DefaultWidth = 80

// Escape sequences.
const (
	seqHideCursor = "\x1b[?25l"
	seqShowCursor = "\x1b[?25h"
	seqClear      = "\x1b[H\x1b[2J"
	seqSyncBegin  = "\x1b[?2026h"
	seqSyncEnd    = "\x1b[?2026l"
)

// Screen writes frames to a terminal. Control sequences are only emitted
// when the output is a TTY, so redirected output stays plain.
type Screen struct {
	mu  sync.Mutex
	out io.Writer
	fd  int
	tty bool
}

// New creates a screen on stdout.
func New() *Screen {
	return NewWriter(os.Stdout)
}

// NewWriter creates a screen on w. Terminal features are enabled only
// when w is a terminal file.
func NewWriter(w io.Writer) *Screen {
	s := &Screen{out: w, fd: -1}
	if f, ok := w.(*os.File); ok {
		s.fd = int(f.Fd())
		s.tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return s
}

// IsTerminal reports whether the screen writes to a TTY.
func (s *Screen) IsTerminal() bool {
	return s.tty
}

// Width returns the terminal column count, or DefaultWidth when unknown.
func (s *Screen) Width() int {
	if s.fd < 0 {
		return DefaultWidth
	}
	cols, _, err := term.GetSize(s.fd)
	if err != nil || cols <= 0 {
		return DefaultWidth
	}
	return cols
}

// HideCursor hides the cursor.
func (s *Screen) HideCursor() {
	s.control(seqHideCursor)
}

// ShowCursor restores the cursor.
func (s *Screen) ShowCursor() {
	s.control(seqShowCursor)
}

// Clear homes the cursor and clears the display.
func (s *Screen) Clear() {
	s.control(seqClear)
}

func (s *Screen) control(seq string) {
	if !s.tty {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.out, seq)
}

// Present replaces the previous frame with frame and a status line below it.
// The whole update goes out in a single write inside a synchronized-output
// bracket so terminals that support it never show a half-drawn frame.
func (s *Screen) Present(frame, status string) error {
	var buf bytes.Buffer
	buf.Grow(len(frame) + len(status) + 32)

	if s.tty {
		buf.WriteString(seqSyncBegin)
		buf.WriteString(seqClear)
	}
	buf.WriteString(frame)
	buf.WriteString("\n\n")
	buf.WriteString(status)
	buf.WriteString("\n")
	if s.tty {
		buf.WriteString(seqSyncEnd)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.out.Write(buf.Bytes())
	return err
}

// Println writes a line of text.
func (s *Screen) Println(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.out, line+"\n")
}

var _ ports.Screen = (*Screen)(nil)
