package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrRecordReasonCommandIsNotConstructed = errors.New(
	"RecordReasonCommand must be created via NewRecordReasonCommand constructor",
)

// RecordReasonCommand sets who is to blame on a held order, e.g. a complaint
// about a finished installation. The rating picks it up immediately.
type RecordReasonCommand struct {
	orderID  kernel.UUID
	category order.ReasonCategory
	text     string
	actor    actor.Actor

	guard guard.ConstructorGuard
}

func NewRecordReasonCommand(
	orderID kernel.UUID,
	category order.ReasonCategory,
	text string,
	a actor.Actor,
) (RecordReasonCommand, error) {
	_, categoryErr := order.ParseReasonCategory(string(category))
	if err := errors.Join(orderID.Validate(), categoryErr, a.Validate()); err != nil {
		return RecordReasonCommand{}, err
	}
	return RecordReasonCommand{
		orderID:  orderID,
		category: category,
		text:     text,
		actor:    a,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RecordReasonCommand) Validate() error {
	return c.guard.Validate(ErrRecordReasonCommandIsNotConstructed)
}

func (c RecordReasonCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RecordReasonCommand) Category() order.ReasonCategory {
	return c.category
}

func (c RecordReasonCommand) Text() string {
	return c.text
}

func (c RecordReasonCommand) Actor() actor.Actor {
	return c.actor
}
