// Package reveal schedules the delayed flip of a card from its source text to
// its target text.
//
// Callbacks never run on a timer goroutine. Clock queues them on a channel
// that the owner's event loop drains, so a fired reveal is just a deferred
// call on the same thread as every other session operation.
package reveal

import (
	"sync"
	"time"
)

// DefaultDelay is how long a card shows its source side before revealing.
const DefaultDelay = 3 * time.Second

// Handle identifies an armed callback. The zero Handle is never issued.
type Handle uint64

// Scheduler arms single-shot delayed callbacks.
type Scheduler interface {
	// Arm schedules fn to run once after delay.
	Arm(delay time.Duration, fn func()) Handle
	// Cancel prevents h from running. Canceling a fired or unknown handle
	// does nothing.
	Cancel(h Handle)
}

// Clock is a Scheduler backed by real timers.
type Clock struct {
	mu    sync.Mutex
	last  Handle
	live  map[Handle]*time.Timer
	fired chan func()
	done  chan struct{}
	once  sync.Once
}

// NewClock creates a Clock. The caller must drain Fired and run each
// function it receives.
func NewClock() *Clock {
	return &Clock{
		live:  make(map[Handle]*time.Timer),
		fired: make(chan func()),
		done:  make(chan struct{}),
	}
}

// Fired delivers callbacks whose delay has elapsed.
func (c *Clock) Fired() <-chan func() {
	return c.fired
}

// Arm implements Scheduler.
func (c *Clock) Arm(delay time.Duration, fn func()) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last++
	h := c.last
	c.live[h] = time.AfterFunc(delay, func() {
		deliver := func() {
			if c.take(h) {
				fn()
			}
		}
		select {
		case c.fired <- deliver:
		case <-c.done:
		}
	})
	return h
}

// Cancel implements Scheduler. A handle whose timer already expired but
// whose callback is still queued will not run once canceled.
func (c *Clock) Cancel(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.live[h]; ok {
		t.Stop()
		delete(c.live, h)
	}
}

// Close stops every pending timer and releases goroutines blocked on Fired.
func (c *Clock) Close() {
	c.once.Do(func() {
		c.mu.Lock()
		for h, t := range c.live {
			t.Stop()
			delete(c.live, h)
		}
		c.mu.Unlock()
		close(c.done)
	})
}

// take claims h for execution, reporting false if it was canceled.
func (c *Clock) take(h Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.live[h]; !ok {
		return false
	}
	delete(c.live, h)
	return true
}
