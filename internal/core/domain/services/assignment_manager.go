package services

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AssignmentManager owns the rule that an order has at most one active
// assignment. Callers must hold the order row lock; the partial unique index
// behind AssignmentRepository.Add catches anyone who does not.
type AssignmentManager struct {
	repo ports.AssignmentRepository
}

func NewAssignmentManager(repo ports.AssignmentRepository) AssignmentManager {
	return AssignmentManager{repo: repo}
}

// GetActive returns the active assignment, or nil when the order is unheld.
func (m AssignmentManager) GetActive(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	return m.repo.FindActiveByOrder(ctx, orderID)
}

// Open starts custody of orderID by companyID. It fails with ConflictError if
// an active assignment already exists.
func (m AssignmentManager) Open(
	ctx context.Context,
	orderID, companyID kernel.UUID,
	actorID *kernel.UUID,
	at time.Time,
) (*assignment.Assignment, error) {
	active, err := m.repo.FindActiveByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, errs.NewConflictError("order assignment", orderID)
	}

	a, err := assignment.NewAssignment(kernel.NewUUID(), orderID, companyID, actorID, at)
	if err != nil {
		return nil, err
	}
	if err = m.repo.Add(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Close ends custody. The row is kept as history.
func (m AssignmentManager) Close(
	ctx context.Context,
	a *assignment.Assignment,
	reason string,
	actorID *kernel.UUID,
	at time.Time,
) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := a.Close(reason, actorID, at); err != nil {
		return err
	}
	return m.repo.Update(ctx, a)
}

// History lists every assignment of the order, oldest first.
func (m AssignmentManager) History(ctx context.Context, orderID kernel.UUID) ([]*assignment.Assignment, error) {
	return m.repo.ListByOrder(ctx, orderID)
}
