package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// DefaultRejectReason is recorded when the company gives none.
const DefaultRejectReason = "No reason"

const maxRejectReasonLen = 200

// RejectOrderCommand is the holding company giving an order back to the pool.
type RejectOrderCommand struct {
	custody
	reason string

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand trims the reason to 200 characters and falls back to
// DefaultRejectReason when it is blank.
func NewRejectOrderCommand(orderID, companyID kernel.UUID, reason string, a actor.Actor) (RejectOrderCommand, error) {
	c, err := newCustody(orderID, companyID, a)
	if err != nil {
		return RejectOrderCommand{}, err
	}

	reason = strings.TrimSpace(reason)
	if r := []rune(reason); len(r) > maxRejectReasonLen {
		reason = string(r[:maxRejectReasonLen])
	}
	if reason == "" {
		reason = DefaultRejectReason
	}

	return RejectOrderCommand{custody: c, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

func (c RejectOrderCommand) Reason() string {
	return c.reason
}
