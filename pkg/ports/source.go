// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"

	"github.com/user/asciiplay/pkg/pipeline"
)

// VideoOpener abstracts the video-decode provider.
type VideoOpener interface {
	// Open probes the file and prepares it for sequential frame reads.
	Open(ctx context.Context, path string) (FrameSource, error)
}

// FrameSource yields decoded frames one at a time.
type FrameSource interface {
	// Info returns metadata reported by the decoder.
	Info() pipeline.VideoInfo

	// Next returns the next frame, or io.EOF when the stream is exhausted.
	Next() (pipeline.RawFrame, error)

	// Close releases the decoder. It is safe to call more than once.
	Close() error
}
