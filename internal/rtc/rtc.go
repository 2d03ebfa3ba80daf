// Package rtc is a software real-time clock: an offset and a location
// applied to an underlying time source.
package rtc

import (
	"sync"
	"time"
)

type Clock struct {
	mu     sync.Mutex
	source func() time.Time
	offset time.Duration
	loc    *time.Location
}

// New returns a clock reading source, or the wall clock when source is nil.
func New(source func() time.Time) *Clock {
	if source == nil {
		source = time.Now
	}
	return &Clock{source: source, loc: time.Local}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source().Add(c.offset).In(c.loc)
}

// Set makes Now report t from this instant on, in t's location.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = t.Sub(c.source())
	c.loc = t.Location()
}

func (c *Clock) Offset() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}
