package ports

// AudioPlayer abstracts the external audio playback process.
// The process is never read from; it is only started, signalled and reaped.
type AudioPlayer interface {
	// Start spawns playback of the audio track of path.
	// It returns false when audio is unavailable; playback continues silently.
	Start(path string) bool

	// Stop terminates playback. Errors are swallowed.
	Stop()
}
