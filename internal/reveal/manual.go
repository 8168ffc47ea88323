package reveal

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by an explicit virtual clock, for tests.
type Manual struct {
	now     time.Duration
	last    Handle
	pending map[Handle]manualEntry
}

type manualEntry struct {
	at time.Duration
	fn func()
}

// NewManual returns a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{pending: make(map[Handle]manualEntry)}
}

// Arm implements Scheduler.
func (m *Manual) Arm(delay time.Duration, fn func()) Handle {
	m.last++
	m.pending[m.last] = manualEntry{at: m.now + delay, fn: fn}
	return m.last
}

// Cancel implements Scheduler.
func (m *Manual) Cancel(h Handle) {
	delete(m.pending, h)
}

// Pending returns the number of armed, unfired callbacks.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Advance moves virtual time forward by d and runs every callback that
// falls due, in due-time then arming order. It returns how many ran.
func (m *Manual) Advance(d time.Duration) int {
	m.now += d

	var due []Handle
	for h, e := range m.pending {
		if e.at <= m.now {
			due = append(due, h)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		a, b := m.pending[due[i]], m.pending[due[j]]
		if a.at != b.at {
			return a.at < b.at
		}
		return due[i] < due[j]
	})

	ran := 0
	for _, h := range due {
		e, ok := m.pending[h]
		if !ok {
			continue // canceled by an earlier callback
		}
		delete(m.pending, h)
		e.fn()
		ran++
	}
	return ran
}
