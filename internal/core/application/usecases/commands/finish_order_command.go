package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrFinishOrderCommandIsNotConstructed = errors.New(
	"FinishOrderCommand must be created via NewFinishOrderCommand constructor",
)

// FinishOrderCommand is the holding company reporting a completed installation.
type FinishOrderCommand struct {
	custody

	guard guard.ConstructorGuard
}

func NewFinishOrderCommand(orderID, companyID kernel.UUID, a actor.Actor) (FinishOrderCommand, error) {
	c, err := newCustody(orderID, companyID, a)
	if err != nil {
		return FinishOrderCommand{}, err
	}
	return FinishOrderCommand{custody: c, guard: guard.NewConstructorGuard()}, nil
}

func (c FinishOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinishOrderCommandIsNotConstructed)
}
