package state

import (
	"sync"

	"github.com/google/uuid"
)

// Clock is a logical clock used to sequence broadcast snapshots.
type Clock struct {
	site    string
	counter uint64
	mu      sync.Mutex
}

// NewClock creates a clock with a random site id.
func NewClock() *Clock {
	return &Clock{site: uuid.NewString()}
}

// Site returns the id of the process owning the clock.
func (c *Clock) Site() string { return c.site }

// Tick increments the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++
	return c.counter
}

// Update moves the clock forward to a received timestamp.
func (c *Clock) Update(timestamp uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if timestamp > c.counter {
		c.counter = timestamp
	}
}

// Now returns the current value without advancing it.
func (c *Clock) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counter
}
