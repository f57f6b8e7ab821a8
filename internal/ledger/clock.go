package ledger

import (
	"sync"
	"time"
)

// Clock supplies the logical timestamps stamped onto submissions.
// Successive calls must return non-decreasing values; the content hash
// and the submission-ordering semantics depend on it.
type Clock interface {
	Now() int64
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() int64

func (f ClockFunc) Now() int64 { return f() }

// SystemClock is a Clock backed by the wall clock in Unix seconds,
// clamped so it never runs backwards across calls even if the system
// time steps back.
type SystemClock struct {
	mu   sync.Mutex
	last int64
}

// NewSystemClock creates a monotonic wall-clock source.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (c *SystemClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().Unix()
	if now < c.last {
		now = c.last
	}
	c.last = now
	return now
}
