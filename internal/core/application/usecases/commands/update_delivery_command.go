package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDeliveryCommandIsNotConstructed = errors.New(
	"UpdateDeliveryCommand must be created via NewUpdateDeliveryCommand constructor",
)

type UpdateDeliveryCommand struct {
	orderID kernel.UUID
	update  delivery.Update
	actor   actor.Actor

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryCommand(orderID kernel.UUID, update delivery.Update, a actor.Actor) (UpdateDeliveryCommand, error) {
	_, statusErr := delivery.ParseStatus(string(update.Status))
	if err := errors.Join(orderID.Validate(), statusErr, a.Validate()); err != nil {
		return UpdateDeliveryCommand{}, err
	}
	return UpdateDeliveryCommand{orderID: orderID, update: update, actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryCommandIsNotConstructed)
}

func (c UpdateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateDeliveryCommand) Update() delivery.Update {
	return c.update
}

func (c UpdateDeliveryCommand) Actor() actor.Actor {
	return c.actor
}
