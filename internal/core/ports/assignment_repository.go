package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

type AssignmentRepository interface {
	// Add inserts an assignment. A second active row for the same order
	// violates uq_active_assignment_per_order and yields errs.ConflictError.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists a closed assignment.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// FindActiveByOrder returns the active assignment or nil when the order is unheld.
	FindActiveByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*assignment.Assignment, error)
}
