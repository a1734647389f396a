// Package ffmpegsource decodes video files to raw RGB frames through an ffmpeg child process.
package ffmpegsource

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/user/asciiplay/pkg/adapters/fftools"
	"github.com/user/asciiplay/pkg/pipeline"
	"github.com/user/asciiplay/pkg/ports"
)

var (
	// ErrUnopenableSource is returned when a file cannot be probed or decoded.
	ErrUnopenableSource = errors.New("ffmpegsource: could not open video")

	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpegsource: ffmpeg not found")

	// ErrDecodeFailed is returned when ffmpeg exits with an error mid-stream.
	ErrDecodeFailed = errors.New("ffmpegsource: decoder failed")
)

// Options configures tool lookup.
type Options struct {
	FFmpegPath  string
	FFprobePath string
}

// Opener opens video files for sequential decoding.
type Opener struct {
	opts   Options
	logger ports.Logger
	find   func(tool, customPath string) (string, error)
}

// New creates a new opener.
func New(opts Options, logger ports.Logger) *Opener {
	return &Opener{
		opts:   opts,
		logger: logger.WithComponent("ffmpeg"),
		find:   fftools.Find,
	}
}

// DecodeArgs returns the ffmpeg arguments that stream path as packed RGB24 frames on stdout.
// Rotation metadata is ignored so frames keep the probed stored dimensions.
func DecodeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-nostdin",
		"-noautorotate",
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-an", "-sn",
		"pipe:1",
	}
}

// Open probes path and starts the decoder. Every failure wraps ErrUnopenableSource.
func (o *Opener) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	info, err := o.probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnopenableSource, err)
	}

	bin, err := o.find(fftools.FFmpeg, o.opts.FFmpegPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrUnopenableSource, ErrFFmpegNotFound, err)
	}

	src, err := start(bin, info, o.logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnopenableSource, err)
	}
	return src, nil
}

// Source reads frames from a running ffmpeg process.
type Source struct {
	info      pipeline.VideoInfo
	logger    ports.Logger
	frameSize int

	mu     sync.Mutex
	cmd    *exec.Cmd
	reader *bufio.Reader
	stderr bytes.Buffer
	closed bool

	waited  bool
	waitErr error
}

// start launches ffmpeg for info.Path.
func start(bin string, info pipeline.VideoInfo, logger ports.Logger) (*Source, error) {
	s := &Source{
		info:      info,
		logger:    logger,
		frameSize: 3 * info.Width * info.Height,
	}

	cmd := exec.Command(bin, DecodeArgs(info.Path)...)
	cmd.Stderr = &s.stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	logger.Debug("Starting decoder: %s", cmd.String())
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	s.cmd = cmd
	s.reader = bufio.NewReaderSize(stdout, s.frameSize)
	return s, nil
}

// Info returns the probed metadata.
func (s *Source) Info() pipeline.VideoInfo {
	return s.info
}

// Next returns the next decoded frame. It returns io.EOF after the last
// complete frame and io.ErrUnexpectedEOF when the stream ends mid-frame.
// When ffmpeg itself exited with an error, Next returns ErrDecodeFailed
// carrying ffmpeg's stderr instead.
func (s *Source) Next() (pipeline.RawFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return pipeline.RawFrame{}, io.EOF
	}

	frame := pipeline.NewRawFrame(s.info.Width, s.info.Height)
	if _, err := io.ReadFull(s.reader, frame.Pix); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			if werr := s.wait(); werr != nil {
				return pipeline.RawFrame{}, s.decodeError(werr)
			}
			return pipeline.RawFrame{}, err
		}
		return pipeline.RawFrame{}, fmt.Errorf("read frame: %w", err)
	}
	return frame, nil
}

// wait reaps ffmpeg once and remembers its exit status. Callers hold s.mu.
func (s *Source) wait() error {
	if !s.waited {
		s.waited = true
		s.waitErr = s.cmd.Wait()
	}
	return s.waitErr
}

func (s *Source) decodeError(err error) error {
	msg := strings.TrimSpace(s.stderr.String())
	if msg == "" {
		return fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	return fmt.Errorf("%w: %w: %s", ErrDecodeFailed, err, msg)
}

// Close stops and reaps ffmpeg. It is safe to call more than once.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if !s.waited {
		s.cmd.Process.Kill()
		s.wait()
	}
	s.logger.Debug("Decoder stopped")
	return nil
}

// Stderr returns what ffmpeg wrote to stderr. Valid once Next has reported
// the end of the stream, or after Close.
func (s *Source) Stderr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stderr.String()
}

var (
	_ ports.VideoOpener = (*Opener)(nil)
	_ ports.FrameSource = (*Source)(nil)
)
