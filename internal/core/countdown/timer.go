package countdown

import (
	"fmt"
	"time"

	"sgsd/internal/clocks"
)

// Timer is the countdown state. It owns the tick source so the running flag
// and an armed source can never disagree.
//
// Timer is not safe for concurrent use; a single goroutine must own it.
type Timer struct {
	clock     clocks.Clock
	interval  time.Duration
	duration  int
	remaining int
	running   bool
	source    *clocks.Ticker
}

// New creates an idle timer counting down from duration seconds.
func New(duration int, clock clocks.Clock, interval time.Duration) (*Timer, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("new countdown: duration must be positive, got %d", duration)
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Timer{
		clock:     clock,
		interval:  interval,
		duration:  duration,
		remaining: duration,
	}, nil
}

// Start arms the tick source with onTick and begins counting from the full
// duration. onTick runs on the clock's goroutine.
func (timer *Timer) Start(onTick func()) error {
	if timer.running {
		return timer.violation("start")
	}
	timer.remaining = timer.duration
	timer.source = timer.clock.Every(timer.interval, onTick)
	timer.running = true
	return nil
}

// Stop disarms the tick source and returns to the full duration.
func (timer *Timer) Stop() error {
	if !timer.running {
		return timer.violation("stop")
	}
	timer.Reset()
	return nil
}

// Reset disarms any tick source and returns to idle. It never fails.
func (timer *Timer) Reset() {
	timer.source.Stop()
	timer.source = nil
	timer.running = false
	timer.remaining = timer.duration
}

// Tick decrements the countdown and returns the new remaining seconds.
// Reaching zero is left to the caller to act on.
func (timer *Timer) Tick() (int, error) {
	if !timer.running || timer.remaining <= 0 {
		return timer.remaining, timer.violation("tick")
	}
	timer.remaining--
	return timer.remaining, nil
}

// SetDuration changes the countdown length. Only allowed while idle.
func (timer *Timer) SetDuration(duration int) error {
	if timer.running {
		return timer.violation("set duration")
	}
	if duration <= 0 {
		return fmt.Errorf("set duration: duration must be positive, got %d", duration)
	}
	timer.duration = duration
	timer.remaining = duration
	return nil
}

func (timer *Timer) Running() bool {
	return timer.running
}

func (timer *Timer) Remaining() int {
	return timer.remaining
}

func (timer *Timer) Duration() int {
	return timer.duration
}

func (timer *Timer) violation(op string) error {
	return &InvariantError{Op: op, Running: timer.running, Remaining: timer.remaining}
}

// Clock formats seconds as zero-padded MM:SS. Minutes are not capped at 59.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
