// Package playback implements the real-time frame scheduler.
//
// The scheduler pulls one frame per iteration, renders and emits it, then
// sleeps for whatever is left of the frame interval. Frames are never dropped:
// under sustained overload playback falls behind wall-clock time. Cancellation
// is cooperative and observed once per iteration.
package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/user/asciiplay/pkg/pipeline"
	"github.com/user/asciiplay/pkg/ports"
)

// DefaultFrameRate replaces frame rates that are zero, negative or not finite.
const DefaultFrameRate = 30.0

// ErrIncompleteSession is returned when a session lacks a source, renderer or emitter.
var ErrIncompleteSession = errors.New("playback: session requires a source, render and emit")

// State is the lifecycle state of a playback session.
type State int

const (
	Idle State = iota
	Running
	Finished
	Cancelled
	Failed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session describes one playback run. A Session is used once.
type Session struct {
	Source      ports.FrameSource
	FrameRate   float64
	TotalFrames int

	Render func(pipeline.RawFrame) (pipeline.GlyphGrid, error)
	Emit   func(pipeline.GlyphGrid, pipeline.Status) error

	// Optional collaborators. Audio is started before the loop and stopped
	// during cleanup; the screen cursor is hidden for the session.
	Audio       ports.AudioPlayer
	AudioPath   string
	AudioOffset time.Duration
	Screen      ports.Screen
}

// Result summarizes a finished session.
type Result struct {
	State        State
	Frames       int
	Progress     float64
	ActualFPS    float64
	Elapsed      time.Duration
	AudioStarted bool
}

// Scheduler paces frame emission against a target frame rate.
type Scheduler struct {
	clock  ports.Clock
	logger ports.Logger
}

// New creates a new scheduler.
func New(clock ports.Clock, logger ports.Logger) *Scheduler {
	return &Scheduler{
		clock:  clock,
		logger: logger.WithComponent("playback"),
	}
}

// NormalizeFrameRate returns rate, or DefaultFrameRate when rate is unusable.
func NormalizeFrameRate(rate float64) float64 {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return DefaultFrameRate
	}
	return rate
}

// FrameInterval returns the target time between frames for rate.
func FrameInterval(rate float64) time.Duration {
	return time.Duration(float64(time.Second) / NormalizeFrameRate(rate))
}

// Run plays the session until the source is exhausted, ctx is cancelled, or
// a frame fails. Cleanup (source close, audio stop, cursor restore) runs
// exactly once on every exit path.
func (s *Scheduler) Run(ctx context.Context, sess Session) (Result, error) {
	defer s.cleanup(sess)

	res := Result{State: Idle}
	if sess.Source == nil || sess.Render == nil || sess.Emit == nil {
		return res, ErrIncompleteSession
	}

	if sess.Screen != nil {
		sess.Screen.HideCursor()
	}
	if sess.Audio != nil && ctx.Err() == nil {
		res.AudioStarted = sess.Audio.Start(sess.AudioPath)
		if sess.AudioOffset > 0 {
			s.clock.Sleep(ctx, sess.AudioOffset)
		}
	}

	frameRate := NormalizeFrameRate(sess.FrameRate)
	state := pipeline.PlaybackState{
		FrameInterval: FrameInterval(frameRate),
		TotalFrames:   sess.TotalFrames,
		SessionStart:  s.clock.Now(),
	}

	s.logger.Debug("Playback started at %.3f fps (%s per frame)", frameRate, state.FrameInterval)
	res.State = Running

	err := s.loop(ctx, sess, &state, frameRate, &res)

	now := s.clock.Now()
	res.Frames = state.FrameIndex
	res.Elapsed = now.Sub(state.SessionStart)
	res.Progress = progressOf(state)
	res.ActualFPS = actualFPS(state.FrameIndex, res.Elapsed)
	s.logger.Debug("Playback ended: %s after %d frames", res.State, res.Frames)

	return res, err
}

// loop runs iterations until a terminal state is reached.
func (s *Scheduler) loop(ctx context.Context, sess Session, state *pipeline.PlaybackState, frameRate float64, res *Result) error {
	for {
		if ctx.Err() != nil {
			res.State = Cancelled
			return nil
		}

		loopStart := s.clock.Now()

		frame, err := sess.Source.Next()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				res.State = Finished
				return nil
			}
			res.State = Failed
			return fmt.Errorf("read frame %d: %w", state.FrameIndex+1, err)
		}
		state.FrameIndex++

		grid, err := sess.Render(frame)
		if err != nil {
			if ctx.Err() != nil {
				res.State = Cancelled
				return nil
			}
			res.State = Failed
			return fmt.Errorf("render frame %d: %w", state.FrameIndex, err)
		}

		status := s.status(state, frameRate)
		if err := sess.Emit(grid, status); err != nil {
			if ctx.Err() != nil {
				res.State = Cancelled
				return nil
			}
			res.State = Failed
			return fmt.Errorf("emit frame %d: %w", state.FrameIndex, err)
		}

		elapsed := s.clock.Now().Sub(loopStart)
		sleep := state.FrameInterval - elapsed
		if sleep > 0 {
			s.clock.Sleep(ctx, sleep)
		} else {
			s.logger.Debug("Frame %d took %s, behind schedule by %s", state.FrameIndex, elapsed, -sleep)
		}
	}
}

// status builds the progress snapshot for the frame just rendered.
func (s *Scheduler) status(state *pipeline.PlaybackState, frameRate float64) pipeline.Status {
	return pipeline.Status{
		Frame:       state.FrameIndex,
		TotalFrames: state.TotalFrames,
		Position:    float64(state.FrameIndex) / frameRate,
		Duration:    float64(state.TotalFrames) / frameRate,
		Progress:    progressOf(*state),
		ActualFPS:   actualFPS(state.FrameIndex, s.clock.Now().Sub(state.SessionStart)),
	}
}

// cleanup releases the session's resources. Failures are logged, never returned.
func (s *Scheduler) cleanup(sess Session) {
	if sess.Source != nil {
		if err := sess.Source.Close(); err != nil {
			s.logger.Debug("Decoder close: %s", err)
		}
	}
	if sess.Audio != nil {
		sess.Audio.Stop()
	}
	if sess.Screen != nil {
		sess.Screen.ShowCursor()
	}
}

// progressOf returns frames/total, or 0 when the total is unknown.
func progressOf(state pipeline.PlaybackState) float64 {
	if state.TotalFrames <= 0 {
		return 0
	}
	return float64(state.FrameIndex) / float64(state.TotalFrames)
}

// actualFPS returns frames per second of wall-clock time, 0 before any time has passed.
func actualFPS(frames int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(frames) / elapsed.Seconds()
}
