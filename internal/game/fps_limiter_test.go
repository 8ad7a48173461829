package game

import (
	"testing"
	"time"

	"mini-scene/internal/config"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances a little on every read and jumps on every sleep
type fakeClock struct {
	t     time.Time
	step  time.Duration
	slept []time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

func (c *fakeClock) total() time.Duration {
	var sum time.Duration
	for _, d := range c.slept {
		sum += d
	}
	return sum
}

func newTestLimiter(limit, paused int) (*FPSLimiter, *fakeClock) {
	cfg := config.Default()
	cfg.FPSLimit = limit
	cfg.PausedFPSLimit = paused
	c := &fakeClock{t: time.Unix(0, 0), step: 50 * time.Microsecond}
	f := NewFPSLimiter(cfg)
	f.now, f.sleep = c.now, c.sleep
	return f, c
}

func TestFPSLimiterPausedCap(t *testing.T) {
	f, c := newTestLimiter(0, 50)
	assert.Zero(t, f.Interval(false))
	assert.Equal(t, 20*time.Millisecond, f.Interval(true))

	start := c.t
	f.Wait(true)
	elapsed := c.t.Sub(start)
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	assert.Less(t, elapsed, 20*time.Millisecond+spinWindow)
	assert.InDelta(t, float64(20*time.Millisecond-spinWindow), float64(c.total()), float64(spinWindow))

	c.slept = nil
	for range 100 {
		f.Wait(false)
	}
	assert.Empty(t, c.slept, "the running cap is unlimited")
}

func TestFPSLimiterRunningCap(t *testing.T) {
	f, c := newTestLimiter(100, 0)
	assert.Equal(t, 10*time.Millisecond, f.Interval(false))
	assert.Zero(t, f.Interval(true))

	start := c.t
	for range 3 {
		f.Wait(false)
	}
	assert.GreaterOrEqual(t, c.t.Sub(start), 30*time.Millisecond)

	c.slept = nil
	f.Wait(true)
	assert.Empty(t, c.slept, "the paused cap is unlimited")
}

func TestFPSLimiterResyncsAfterHitch(t *testing.T) {
	f, c := newTestLimiter(100, 30)
	f.Wait(false)

	// a frame that overran by several intervals waits a full interval
	// instead of returning immediately to catch up
	c.t = c.t.Add(100 * time.Millisecond)
	c.slept = nil
	start := c.t
	f.Wait(false)
	assert.NotEmpty(t, c.slept)
	assert.GreaterOrEqual(t, c.t.Sub(start), 10*time.Millisecond)
}

func TestNewFPSLimiterClampsCaps(t *testing.T) {
	f, _ := newTestLimiter(5000, 3)
	assert.Equal(t, time.Millisecond, f.Interval(false))
	assert.Equal(t, 100*time.Millisecond, f.Interval(true))
}
