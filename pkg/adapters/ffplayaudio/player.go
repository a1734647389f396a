// Package ffplayaudio plays a video's audio track through a detached ffplay process.
//
// The sidecar is best-effort: there is no channel back from ffplay, so a
// missing binary or a failed spawn only means playback continues silently.
package ffplayaudio

import (
	"errors"
	"os/exec"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/user/asciiplay/pkg/adapters/fftools"
	"github.com/user/asciiplay/pkg/ports"
)

// DefaultStopTimeout is how long Stop waits after a graceful terminate before killing.
const DefaultStopTimeout = time.Second

// ErrFFplayNotFound is logged when no ffplay binary can be located.
var ErrFFplayNotFound = errors.New("ffplayaudio: ffplay not found")

// installHints are printed once when ffplay is missing.
var installHints = []string{
	"  Ubuntu/Debian: sudo apt-get install ffmpeg",
	"  macOS: brew install ffmpeg",
}

// Options configures the player.
type Options struct {
	// FFplayPath overrides ffplay lookup.
	FFplayPath string

	// StopTimeout bounds the wait between terminate and kill.
	StopTimeout time.Duration
}

// Player owns at most one ffplay child process.
type Player struct {
	opts   Options
	notice ports.Logger
	logger ports.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	done   chan struct{}
	warned bool
}

// New creates a new audio player.
func New(opts Options, logger ports.Logger) *Player {
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = DefaultStopTimeout
	}
	return &Player{
		opts:   opts,
		notice: logger,
		logger: logger.WithComponent("audio"),
	}
}

// Args returns the ffplay arguments used to play path without a window.
func Args(path string) []string {
	return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}
}

// Start spawns ffplay for path and reports whether audio is playing.
// A running process is left untouched.
func (p *Player) Start(path string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd != nil {
		return true
	}

	bin, err := fftools.Find(fftools.FFplay, p.opts.FFplayPath)
	if err != nil {
		p.warnMissing(err)
		return false
	}

	// Stdio left nil is connected to the null device.
	cmd := exec.Command(bin, Args(path)...)
	if err := cmd.Start(); err != nil {
		p.logger.Debug("Failed to start audio: %s", err)
		return false
	}

	done := make(chan struct{})
	go func() {
		cmd.Wait()
		close(done)
	}()

	p.cmd = cmd
	p.done = done
	p.logger.Debug("Audio started (pid %d)", cmd.Process.Pid)
	return true
}

// warnMissing tells the user once that audio is unavailable.
func (p *Player) warnMissing(err error) {
	p.logger.Debug("%s", errors.Join(ErrFFplayNotFound, err))
	if p.warned {
		return
	}
	p.warned = true
	p.notice.Warn("ffplay not found - playing without audio")
	p.notice.Warn("Install ffmpeg to enable audio:")
	for _, hint := range installHints {
		p.notice.Warn(hint)
	}
}

// Stop terminates the ffplay process, killing it if it does not exit
// within the stop timeout. Errors are swallowed; Stop is idempotent.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd == nil {
		return
	}
	cmd, done := p.cmd, p.done
	p.cmd, p.done = nil, nil

	select {
	case <-done:
		p.logger.Debug("Audio stopped")
		return
	default:
	}

	if runtime.GOOS == "windows" {
		cmd.Process.Kill()
	} else {
		cmd.Process.Signal(syscall.SIGTERM)
	}

	select {
	case <-done:
	case <-time.After(p.opts.StopTimeout):
		p.logger.Debug("Audio did not exit within %s, killing", p.opts.StopTimeout)
		cmd.Process.Kill()
		<-done
	}
	p.logger.Debug("Audio stopped")
}

// Running reports whether an ffplay process is owned and has not exited.
func (p *Player) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

var _ ports.AudioPlayer = (*Player)(nil)
