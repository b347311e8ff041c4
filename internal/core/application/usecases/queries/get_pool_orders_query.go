package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetPoolOrdersQueryIsNotConstructed = errors.New(
	"GetPoolOrdersQuery must be created via NewGetPoolOrdersQuery constructor",
)

// GetPoolOrdersQuery lists orders waiting in the open pool, earliest installation first.
type GetPoolOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPoolOrdersQuery() GetPoolOrdersQuery {
	return GetPoolOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPoolOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPoolOrdersQueryIsNotConstructed)
}
