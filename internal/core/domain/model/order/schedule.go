package order

import (
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
)

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	hour   int
	minute int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("hour", hour, 0, 23)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("minute", minute, 0, 59)
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

// ParseTimeOfDay accepts "15:04".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, errs.NewValueIsInvalidErrorWithCause("time", err)
	}
	return TimeOfDay{hour: t.Hour(), minute: t.Minute()}, nil
}

func (t TimeOfDay) Hour() int {
	return t.hour
}

func (t TimeOfDay) Minute() int {
	return t.minute
}

func (t TimeOfDay) minutes() int {
	return t.hour*60 + t.minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// Schedule is the installation window: a calendar date and a from/to time.
type Schedule struct {
	year     int
	month    time.Month
	day      int
	timeFrom TimeOfDay
	timeTo   TimeOfDay
}

// NewSchedule keeps only the calendar part of date.
func NewSchedule(date time.Time, from, to TimeOfDay) (Schedule, error) {
	if date.IsZero() {
		return Schedule{}, errs.NewValueIsRequiredError("date")
	}
	if to.minutes() < from.minutes() {
		return Schedule{}, errs.NewValueIsInvalidErrorWithCause(
			"time_to", fmt.Errorf("%s is before %s", to, from))
	}
	y, m, d := date.Date()
	return Schedule{year: y, month: m, day: d, timeFrom: from, timeTo: to}, nil
}

// Date returns the calendar date at midnight UTC.
func (s Schedule) Date() time.Time {
	return time.Date(s.year, s.month, s.day, 0, 0, 0, 0, time.UTC)
}

func (s Schedule) TimeFrom() TimeOfDay {
	return s.timeFrom
}

func (s Schedule) TimeTo() TimeOfDay {
	return s.timeTo
}

// InstallAt combines the date and time_from in loc.
func (s Schedule) InstallAt(loc *time.Location) time.Time {
	return time.Date(s.year, s.month, s.day, s.timeFrom.hour, s.timeFrom.minute, 0, 0, loc)
}
