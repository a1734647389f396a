package mocks

import "github.com/user/asciiplay/pkg/ports"

// AudioPlayer is a mock implementation of ports.AudioPlayer.
type AudioPlayer struct {
	Available bool

	StartCalls []string
	StopCalls  int
}

func (m *AudioPlayer) Start(path string) bool {
	m.StartCalls = append(m.StartCalls, path)
	return m.Available
}

func (m *AudioPlayer) Stop() {
	m.StopCalls++
}

var _ ports.AudioPlayer = (*AudioPlayer)(nil)
