package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrPublishToPoolCommandIsNotConstructed = errors.New(
	"PublishToPoolCommand must be created via NewPublishToPoolCommand constructor",
)

// PublishToPoolCommand moves an inbox order into the open pool.
type PublishToPoolCommand struct {
	orderID kernel.UUID
	actor   actor.Actor

	guard guard.ConstructorGuard
}

func NewPublishToPoolCommand(orderID kernel.UUID, a actor.Actor) (PublishToPoolCommand, error) {
	if err := errors.Join(orderID.Validate(), a.Validate()); err != nil {
		return PublishToPoolCommand{}, err
	}
	return PublishToPoolCommand{orderID: orderID, actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (c PublishToPoolCommand) Validate() error {
	return c.guard.Validate(ErrPublishToPoolCommandIsNotConstructed)
}

func (c PublishToPoolCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PublishToPoolCommand) Actor() actor.Actor {
	return c.actor
}
