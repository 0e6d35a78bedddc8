package throttle

import (
	"sync"
	"time"
)

// Crude is a coarse rate limiter: it lets callsPerMin calls through, then
// stalls for a full minute and starts over. Bursty, but fine for
// low-frequency providers (10/min or less).
type Crude struct {
	mu    sync.Mutex
	limit int
	count int

	sleep func(time.Duration)
}

// NewCrude creates a crude throttler allowing callsPerMin calls per burst.
func NewCrude(callsPerMin int) *Crude {
	return &Crude{
		limit: callsPerMin,
		sleep: time.Sleep,
	}
}

// Acquire counts the call and, once the burst is used up, resets the
// counter and stalls for a minute. The lock is held across the stall so
// concurrent callers queue behind the same window.
func (c *Crude) Acquire() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.count++
	if c.count > c.limit {
		c.count = 0
		c.sleep(time.Minute)
	}
}
