package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrTakeFromPoolCommandIsNotConstructed = errors.New(
	"TakeFromPoolCommand must be created via NewTakeFromPoolCommand constructor",
)

// TakeFromPoolCommand is a company claiming an order from the open pool.
type TakeFromPoolCommand struct {
	custody

	guard guard.ConstructorGuard
}

func NewTakeFromPoolCommand(orderID, companyID kernel.UUID, a actor.Actor) (TakeFromPoolCommand, error) {
	c, err := newCustody(orderID, companyID, a)
	if err != nil {
		return TakeFromPoolCommand{}, err
	}
	return TakeFromPoolCommand{custody: c, guard: guard.NewConstructorGuard()}, nil
}

func (c TakeFromPoolCommand) Validate() error {
	return c.guard.Validate(ErrTakeFromPoolCommandIsNotConstructed)
}
