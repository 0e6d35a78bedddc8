package throttle

import (
	"sync"
	"time"
)

// TokenBucket is a lazy token bucket: tokens are only added when Acquire is
// called, based on the time elapsed since the previous refill, and every
// withdrawal is for exactly one token. Sleeps in one-second increments, so
// it is a poor fit for rates under 60 calls per minute; use Crude there.
type TokenBucket struct {
	mu       sync.Mutex
	capacity float64
	tokens   float64
	rate     float64 // tokens per second
	last     time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewTokenBucket creates a token bucket sized and refilled for callsPerMin
// calls per minute. The bucket starts full.
func NewTokenBucket(callsPerMin int) *TokenBucket {
	b := &TokenBucket{
		capacity: float64(callsPerMin),
		tokens:   float64(callsPerMin),
		rate:     float64(callsPerMin) / 60,
		now:      time.Now,
		sleep:    time.Sleep,
	}
	b.last = b.now()
	return b
}

// Acquire refills the bucket, then either deducts a token and returns or
// sleeps a second and tries again.
func (b *TokenBucket) Acquire() {
	for {
		b.mu.Lock()
		now := b.now()
		b.tokens += b.rate * now.Sub(b.last).Seconds()
		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}
		b.last = now

		if b.tokens >= 1 {
			b.tokens--
			b.mu.Unlock()
			return
		}
		b.mu.Unlock()
		b.sleep(time.Second)
	}
}
