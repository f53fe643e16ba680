package clock

import (
	"sync"
	"time"
)

// Resolution is the finest unit every record backend can persist (Postgres stores microseconds).
const Resolution = time.Microsecond

// Monotonic hands out strictly increasing UTC timestamps so that records created back to back
// (a user turn followed by its reply) never share a creation time.
type Monotonic struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func NewMonotonic() *Monotonic {
	return &Monotonic{now: time.Now}
}

// NewMonotonicFrom uses source instead of the wall clock.
func NewMonotonicFrom(source func() time.Time) *Monotonic {
	return &Monotonic{now: source}
}

func (c *Monotonic) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC().Truncate(Resolution)
	if !t.After(c.last) {
		t = c.last.Add(Resolution)
	}
	c.last = t
	return t
}
