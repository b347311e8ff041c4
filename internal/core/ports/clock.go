package ports

import "time"

// Clock supplies the current instant and the business time zone in which
// installation dates and times are interpreted.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}
