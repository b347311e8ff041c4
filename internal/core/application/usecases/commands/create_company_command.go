package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateCompanyCommandIsNotConstructed = errors.New(
	"CreateCompanyCommand must be created via NewCreateCompanyCommand constructor",
)

// CreateCompanyCommand registers an installation company. It starts with the
// top rating and an empty wallet.
type CreateCompanyCommand struct {
	name  string
	email string
	actor actor.Actor

	guard guard.ConstructorGuard
}

func NewCreateCompanyCommand(name, email string, a actor.Actor) (CreateCompanyCommand, error) {
	name = strings.TrimSpace(name)
	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(nameErr, a.Validate()); err != nil {
		return CreateCompanyCommand{}, err
	}
	return CreateCompanyCommand{
		name:  name,
		email: strings.TrimSpace(email),
		actor: a,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCompanyCommand) Validate() error {
	return c.guard.Validate(ErrCreateCompanyCommandIsNotConstructed)
}

func (c CreateCompanyCommand) Name() string {
	return c.name
}

func (c CreateCompanyCommand) Email() string {
	return c.email
}

func (c CreateCompanyCommand) Actor() actor.Actor {
	return c.actor
}
