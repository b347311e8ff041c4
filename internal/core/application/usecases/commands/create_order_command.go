package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

type CreateOrderCommand struct {
	fields OrderFields
	actor  actor.Actor

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(fields OrderFields, a actor.Actor) (CreateOrderCommand, error) {
	if err := errors.Join(fields.validate(), a.Validate()); err != nil {
		return CreateOrderCommand{}, err
	}
	return CreateOrderCommand{fields: fields, actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Fields() OrderFields {
	return c.fields
}

func (c CreateOrderCommand) Actor() actor.Actor {
	return c.actor
}
