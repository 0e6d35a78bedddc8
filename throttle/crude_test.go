package throttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCrudeBurstThenStall(t *testing.T) {
	var slept []time.Duration
	c := NewCrude(3)
	c.sleep = func(d time.Duration) { slept = append(slept, d) }

	// The whole burst passes without sleeping.
	for i := 0; i < 3; i++ {
		c.Acquire()
	}
	assert.Empty(t, slept)

	// The next call stalls for a minute.
	c.Acquire()
	assert.Equal(t, []time.Duration{time.Minute}, slept)
}

func TestCrudeCounterResetsAfterStall(t *testing.T) {
	var slept []time.Duration
	c := NewCrude(2)
	c.sleep = func(d time.Duration) { slept = append(slept, d) }

	c.Acquire()
	c.Acquire()
	c.Acquire() // stall, counter resets
	assert.Len(t, slept, 1)

	// A fresh burst passes again.
	c.Acquire()
	c.Acquire()
	assert.Len(t, slept, 1)

	c.Acquire()
	assert.Len(t, slept, 2)
}
