// Package penalty holds the bands that map hours-before-installation to a
// rejection penalty.
package penalty

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Rule is the closed band [HoursFrom, HoursTo] charging Penalty.
type Rule struct {
	id        kernel.UUID
	name      string
	hoursFrom int
	hoursTo   int
	penalty   kernel.Money
	active    bool
}

func NewRule(id kernel.UUID, name string, hoursFrom, hoursTo int, penalty kernel.Money, active bool) (Rule, error) {
	r := Rule{
		id:        id,
		name:      strings.TrimSpace(name),
		hoursFrom: hoursFrom,
		hoursTo:   hoursTo,
		penalty:   penalty,
		active:    active,
	}

	var nameErr, bandErr, penaltyErr error
	if r.name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if hoursFrom < 0 || hoursTo < hoursFrom {
		bandErr = errs.NewValueIsInvalidErrorWithCause("hours_before_install",
			fmt.Errorf("band [%d, %d] is empty or negative", hoursFrom, hoursTo))
	}
	if penalty.IsNegative() {
		penaltyErr = errs.NewValueIsOutOfRangeError("penalty_eur", penalty, "0.00", "unbounded")
	}

	if err := errors.Join(id.Validate(), nameErr, bandErr, penaltyErr); err != nil {
		return Rule{}, err
	}
	return r, nil
}

func (r Rule) ID() kernel.UUID {
	return r.id
}

func (r Rule) Name() string {
	return r.name
}

func (r Rule) HoursFrom() int {
	return r.hoursFrom
}

func (r Rule) HoursTo() int {
	return r.hoursTo
}

func (r Rule) Penalty() kernel.Money {
	return r.penalty
}

func (r Rule) IsActive() bool {
	return r.active
}

// Contains reports whether hours falls inside the band, both ends included.
func (r Rule) Contains(hours int) bool {
	return hours >= r.hoursFrom && hours <= r.hoursTo
}
