package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetNewDocumentsQueryIsNotConstructed = errors.New(
	"GetNewDocumentsQuery must be created via NewGetNewDocumentsQuery constructor",
)

// GetNewDocumentsQuery is the dispatcher's intake inbox: uploads not yet turned into orders.
type GetNewDocumentsQuery struct {
	actor actor.Actor

	guard guard.ConstructorGuard
}

func NewGetNewDocumentsQuery(a actor.Actor) (GetNewDocumentsQuery, error) {
	if err := a.Validate(); err != nil {
		return GetNewDocumentsQuery{}, err
	}
	return GetNewDocumentsQuery{actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (q GetNewDocumentsQuery) Validate() error {
	return q.guard.Validate(ErrGetNewDocumentsQueryIsNotConstructed)
}

type DocumentSummary struct {
	ID        kernel.UUID
	Source    string
	Filename  string
	SizeBytes int64
	SHA256    string
	CreatedAt time.Time
}
