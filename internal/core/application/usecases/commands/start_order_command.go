package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartOrderCommandIsNotConstructed = errors.New(
	"StartOrderCommand must be created via NewStartOrderCommand constructor",
)

type StartOrderCommand struct {
	custody

	guard guard.ConstructorGuard
}

func NewStartOrderCommand(orderID, companyID kernel.UUID, a actor.Actor) (StartOrderCommand, error) {
	c, err := newCustody(orderID, companyID, a)
	if err != nil {
		return StartOrderCommand{}, err
	}
	return StartOrderCommand{custody: c, guard: guard.NewConstructorGuard()}, nil
}

func (c StartOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderCommandIsNotConstructed)
}
