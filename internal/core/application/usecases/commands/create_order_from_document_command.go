package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderFromDocumentCommandIsNotConstructed = errors.New(
	"CreateOrderFromDocumentCommand must be created via NewCreateOrderFromDocumentCommand constructor",
)

type CreateOrderFromDocumentCommand struct {
	documentID kernel.UUID
	fields     OrderFields
	actor      actor.Actor

	guard guard.ConstructorGuard
}

func NewCreateOrderFromDocumentCommand(
	documentID kernel.UUID,
	fields OrderFields,
	a actor.Actor,
) (CreateOrderFromDocumentCommand, error) {
	if err := errors.Join(documentID.Validate(), fields.validate(), a.Validate()); err != nil {
		return CreateOrderFromDocumentCommand{}, err
	}
	return CreateOrderFromDocumentCommand{
		documentID: documentID,
		fields:     fields,
		actor:      a,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderFromDocumentCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderFromDocumentCommandIsNotConstructed)
}

func (c CreateOrderFromDocumentCommand) DocumentID() kernel.UUID {
	return c.documentID
}

func (c CreateOrderFromDocumentCommand) Fields() OrderFields {
	return c.fields
}

func (c CreateOrderFromDocumentCommand) Actor() actor.Actor {
	return c.actor
}
