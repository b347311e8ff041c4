package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
)

// custody is the (order, company, actor) triple shared by the lifecycle commands.
type custody struct {
	orderID   kernel.UUID
	companyID kernel.UUID
	actor     actor.Actor
}

func newCustody(orderID, companyID kernel.UUID, a actor.Actor) (custody, error) {
	if err := errors.Join(
		orderID.Validate(),
		companyID.Validate(),
		a.Validate(),
	); err != nil {
		return custody{}, err
	}
	return custody{orderID: orderID, companyID: companyID, actor: a}, nil
}

func (c custody) OrderID() kernel.UUID {
	return c.orderID
}

func (c custody) CompanyID() kernel.UUID {
	return c.companyID
}

func (c custody) Actor() actor.Actor {
	return c.actor
}

// actorID is the user recorded on assignment rows.
func (c custody) actorID() *kernel.UUID {
	id := c.actor.UserID()
	return &id
}
