package portstest

import "time"

// Clock is a settable ports.Clock.
type Clock struct {
	At  time.Time
	Loc *time.Location
}

func NewClock(at time.Time, loc *time.Location) *Clock {
	return &Clock{At: at, Loc: loc}
}

func (c *Clock) Now() time.Time {
	return c.At
}

func (c *Clock) Location() *time.Location {
	return c.Loc
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.At = c.At.Add(d)
}
