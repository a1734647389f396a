package ports

// Screen abstracts the terminal the glyph frames are presented on.
type Screen interface {
	// Width returns the number of character columns available.
	Width() int

	// HideCursor hides the cursor until ShowCursor is called.
	HideCursor()

	// ShowCursor restores cursor visibility.
	ShowCursor()

	// Present clears the previous frame and writes the frame text followed by the status line.
	Present(frame, status string) error

	// Println writes a line outside of frame presentation (banner, summaries).
	Println(line string)
}
