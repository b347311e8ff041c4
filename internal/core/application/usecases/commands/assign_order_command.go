package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand is a dispatcher handing an inbox or pooled order to a company.
//
// Example:
//
//	cmd, err := NewAssignOrderCommand(orderID, companyID, dispatcher)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AssignOrderCommand struct {
	custody

	guard guard.ConstructorGuard
}

func NewAssignOrderCommand(orderID, companyID kernel.UUID, a actor.Actor) (AssignOrderCommand, error) {
	c, err := newCustody(orderID, companyID, a)
	if err != nil {
		return AssignOrderCommand{}, err
	}
	return AssignOrderCommand{custody: c, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}
