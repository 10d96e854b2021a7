package clocks

import (
	"context"
	"sync"
	"time"
)

// Clock arms recurring callbacks.
type Clock interface {
	Every(d time.Duration, fn func()) *Ticker
}

// Ticker is the handle of an armed callback.
type Ticker struct {
	cancel context.CancelFunc
}

// Stop disarms the callback. Safe to call more than once.
func (t *Ticker) Stop() {
	if t == nil || t.cancel == nil {
		return
	}
	t.cancel()
}

type SystemClock struct{}

func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Every calls fn on its own goroutine once per d until the ticker is stopped.
// A call already in flight when Stop returns is not interrupted.
func (c *SystemClock) Every(d time.Duration, fn func()) *Ticker {
	ticker := time.NewTicker(d)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				// Both cases may be ready at once; stopping wins.
				if ctx.Err() != nil {
					return
				}
				fn()
			case <-ctx.Done():
				return
			}
		}
	}()

	return &Ticker{cancel: cancel}
}

var _ Clock = (*SystemClock)(nil)

// ManualClock only fires when told to. Used by tests.
type ManualClock struct {
	mu     sync.Mutex
	nextID int
	armed  map[int]manualEntry
}

type manualEntry struct {
	interval time.Duration
	fn       func()
}

func NewManualClock() *ManualClock {
	return &ManualClock{armed: make(map[int]manualEntry)}
}

func (c *ManualClock) Every(d time.Duration, fn func()) *Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.armed[id] = manualEntry{interval: d, fn: fn}

	return &Ticker{cancel: func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.armed, id)
	}}
}

// Fire calls every armed callback once, on the caller's goroutine.
func (c *ManualClock) Fire() {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.armed))
	for _, entry := range c.armed {
		fns = append(fns, entry.fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Armed returns the number of callbacks not yet stopped.
func (c *ManualClock) Armed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.armed)
}

// Intervals returns the intervals of the armed callbacks.
func (c *ManualClock) Intervals() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	intervals := make([]time.Duration, 0, len(c.armed))
	for _, entry := range c.armed {
		intervals = append(intervals, entry.interval)
	}
	return intervals
}

var _ Clock = (*ManualClock)(nil)
