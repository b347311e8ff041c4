package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRecomputeRatingCommandIsNotConstructed = errors.New(
	"RecomputeRatingCommand must be created via NewRecomputeRatingCommand constructor",
)

type RecomputeRatingCommand struct {
	companyID kernel.UUID
	actor     actor.Actor

	guard guard.ConstructorGuard
}

func NewRecomputeRatingCommand(companyID kernel.UUID, a actor.Actor) (RecomputeRatingCommand, error) {
	if err := errors.Join(companyID.Validate(), a.Validate()); err != nil {
		return RecomputeRatingCommand{}, err
	}
	return RecomputeRatingCommand{companyID: companyID, actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (c RecomputeRatingCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeRatingCommandIsNotConstructed)
}

func (c RecomputeRatingCommand) CompanyID() kernel.UUID {
	return c.companyID
}

func (c RecomputeRatingCommand) Actor() actor.Actor {
	return c.actor
}
