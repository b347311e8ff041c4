// Package clock provides the wall clock used outside tests.
package clock

import (
	"fmt"
	"time"
)

// System reports the current UTC instant and the business time zone in which
// installation dates are interpreted.
type System struct {
	loc *time.Location
}

func NewSystem(timezone string) (*System, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &System{loc: loc}, nil
}

func (c *System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (c *System) Location() *time.Location {
	return c.loc
}
