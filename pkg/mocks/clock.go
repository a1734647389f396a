package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/user/asciiplay/pkg/ports"
)

// Clock is a manual clock. Time only moves through Advance and Sleep.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	Sleeps []time.Duration
}

// NewClock creates a clock starting at a fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep records the duration and advances the clock without blocking.
// A done context returns immediately without advancing.
func (c *Clock) Sleep(ctx context.Context, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sleeps = append(c.Sleeps, d)
	if ctx.Err() != nil {
		return
	}
	c.now = c.now.Add(d)
}

// Advance moves the clock forward, simulating work.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TotalSleep returns the sum of all recorded sleeps.
func (c *Clock) TotalSleep() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total time.Duration
	for _, d := range c.Sleeps {
		total += d
	}
	return total
}

var _ ports.Clock = (*Clock)(nil)
