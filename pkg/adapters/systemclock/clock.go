// Package systemclock provides the wall-clock implementation of ports.Clock.
package systemclock

import (
	"context"
	"time"

	"github.com/user/asciiplay/pkg/ports"
)

// Clock reads time from the operating system.
type Clock struct{}

// New creates a new system clock.
func New() *Clock {
	return &Clock{}
}

// Now returns time.Now, which carries a monotonic reading.
func (c *Clock) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d or until ctx is done.
func (c *Clock) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

var _ ports.Clock = (*Clock)(nil)
