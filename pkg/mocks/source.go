package mocks

import (
	"context"
	"io"

	"github.com/user/asciiplay/pkg/pipeline"
	"github.com/user/asciiplay/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource that yields
// a fixed number of synthetic frames.
type FrameSource struct {
	VideoInfo pipeline.VideoInfo
	Frames    int

	// NextErrAt makes Next fail with NextErr on that 1-based frame number.
	NextErrAt int
	NextErr   error

	// FrameFunc overrides the generated frame for a 1-based frame number.
	FrameFunc func(n int) pipeline.RawFrame

	NextCalls  int
	CloseCalls int
	CloseErr   error
}

// NewFrameSource creates a source of n solid gray frames of the given size.
func NewFrameSource(n, width, height int, fps float64) *FrameSource {
	return &FrameSource{
		VideoInfo: pipeline.VideoInfo{
			Path:        "synthetic.mp4",
			Width:       width,
			Height:      height,
			FrameRate:   fps,
			TotalFrames: n,
		},
		Frames: n,
	}
}

func (m *FrameSource) Info() pipeline.VideoInfo {
	return m.VideoInfo
}

func (m *FrameSource) Next() (pipeline.RawFrame, error) {
	m.NextCalls++
	if m.NextErrAt > 0 && m.NextCalls == m.NextErrAt {
		return pipeline.RawFrame{}, m.NextErr
	}
	if m.NextCalls > m.Frames {
		return pipeline.RawFrame{}, io.EOF
	}
	if m.FrameFunc != nil {
		return m.FrameFunc(m.NextCalls), nil
	}
	f := pipeline.NewRawFrame(m.VideoInfo.Width, m.VideoInfo.Height)
	for i := range f.Pix {
		f.Pix[i] = uint8(m.NextCalls * 20)
	}
	return f, nil
}

func (m *FrameSource) Close() error {
	m.CloseCalls++
	return m.CloseErr
}

var _ ports.FrameSource = (*FrameSource)(nil)

// VideoOpener is a mock implementation of ports.VideoOpener.
type VideoOpener struct {
	Source *FrameSource
	Err    error
	Opened []string
}

func (m *VideoOpener) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	m.Opened = append(m.Opened, path)
	if m.Err != nil {
		return nil, m.Err
	}
	m.Source.VideoInfo.Path = path
	return m.Source, nil
}

var _ ports.VideoOpener = (*VideoOpener)(nil)
