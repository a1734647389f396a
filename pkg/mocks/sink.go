package mocks

import (
	"image"
	"sync"

	"github.com/user/asciiplay/pkg/pipeline"
	"github.com/user/asciiplay/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	SessionJSON []byte
	GlyphFrames map[int]pipeline.GlyphGrid
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:     enabled,
		GlyphFrames: make(map[int]pipeline.GlyphGrid),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveSessionJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionJSON = data
	return nil
}

func (m *DebugSink) SaveGlyphFrame(index int, grid pipeline.GlyphGrid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GlyphFrames[index] = grid
	return nil
}

// FrameCount returns the number of saved frames (for test verification).
func (m *DebugSink) FrameCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.GlyphFrames)
}

var _ ports.DebugSink = (*DebugSink)(nil)

// Rasterizer is a mock implementation of ports.Rasterizer.
type Rasterizer struct {
	RasterizeCalls int
	EncodeErr      error
}

func (m *Rasterizer) Rasterize(grid pipeline.GlyphGrid, cellWidth, cellHeight int) image.Image {
	m.RasterizeCalls++
	return image.NewRGBA(image.Rect(0, 0, grid.Width()*cellWidth, grid.Height()*cellHeight))
}

func (m *Rasterizer) EncodePNG(img image.Image) ([]byte, error) {
	if m.EncodeErr != nil {
		return nil, m.EncodeErr
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

var _ ports.Rasterizer = (*Rasterizer)(nil)
