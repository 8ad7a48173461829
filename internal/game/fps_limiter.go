package game

import (
	"runtime"
	"time"

	"mini-scene/internal/config"
)

// spinWindow is the tail of each frame spent yielding instead of sleeping.
// time.Sleep overshoots by roughly this much on most schedulers.
const spinWindow = 200 * time.Microsecond

// FPSLimiter paces the frame loop to the running or paused frame cap
type FPSLimiter struct {
	limit       int
	pausedLimit int
	deadline    time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewFPSLimiter reads both caps from cfg, clamped like the -fps flag
func NewFPSLimiter(cfg config.Settings) *FPSLimiter {
	return &FPSLimiter{
		limit:       config.ClampFPSLimit(cfg.FPSLimit),
		pausedLimit: config.ClampFPSLimit(cfg.PausedFPSLimit),
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// Interval returns the frame budget for the current state, 0 when uncapped
func (f *FPSLimiter) Interval(paused bool) time.Duration {
	limit := f.limit
	if paused {
		limit = f.pausedLimit
	}
	if limit <= 0 {
		return 0
	}
	return time.Second / time.Duration(limit)
}

// Wait blocks until the next frame is due. Deadlines advance by a fixed
// interval so short frames make up for long ones; a hitch longer than one
// interval resyncs to now instead of bursting to catch up.
func (f *FPSLimiter) Wait(paused bool) {
	interval := f.Interval(paused)
	if interval == 0 {
		f.deadline = time.Time{}
		return
	}

	now := f.now()
	if f.deadline.IsZero() || now.Sub(f.deadline) > interval {
		f.deadline = now
	}
	f.deadline = f.deadline.Add(interval)
	f.pace()
}

func (f *FPSLimiter) pace() {
	for {
		remaining := f.deadline.Sub(f.now())
		if remaining <= 0 {
			return
		}
		if remaining > spinWindow {
			f.sleep(remaining - spinWindow)
			continue
		}
		runtime.Gosched()
	}
}
