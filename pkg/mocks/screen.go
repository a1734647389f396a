package mocks

import "github.com/user/asciiplay/pkg/ports"

// Screen is a mock implementation of ports.Screen that records output.
type Screen struct {
	Columns int

	HideCursorCalls int
	ShowCursorCalls int
	Frames          []string
	Statuses        []string
	Lines           []string

	// PresentFunc runs after a frame is recorded, e.g. to cancel a session mid-loop.
	PresentFunc func(n int) error
}

func (m *Screen) Width() int {
	if m.Columns == 0 {
		return 80
	}
	return m.Columns
}

func (m *Screen) HideCursor() {
	m.HideCursorCalls++
}

func (m *Screen) ShowCursor() {
	m.ShowCursorCalls++
}

func (m *Screen) Present(frame, status string) error {
	m.Frames = append(m.Frames, frame)
	m.Statuses = append(m.Statuses, status)
	if m.PresentFunc != nil {
		return m.PresentFunc(len(m.Frames))
	}
	return nil
}

func (m *Screen) Println(line string) {
	m.Lines = append(m.Lines, line)
}

var _ ports.Screen = (*Screen)(nil)
