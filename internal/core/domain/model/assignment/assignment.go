// Package assignment records which company held an order and when.
//
// An assignment is active while UnassignedAt is nil. For any order at most one
// assignment is active; the domain service and a partial unique index keep it so.
package assignment

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

type Assignment struct {
	id             kernel.UUID
	orderID        kernel.UUID
	companyID      kernel.UUID
	assignedAt     time.Time
	assignedBy     *kernel.UUID
	unassignedAt   *time.Time
	unassignReason string
	unassignedBy   *kernel.UUID

	isConstructed bool
}

// NewAssignment opens an active assignment.
func NewAssignment(id, orderID, companyID kernel.UUID, assignedBy *kernel.UUID, at time.Time) (*Assignment, error) {
	a := &Assignment{
		id:            id,
		orderID:       orderID,
		companyID:     companyID,
		assignedAt:    at,
		assignedBy:    assignedBy,
		isConstructed: true,
	}
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		companyID.Validate(),
	); err != nil {
		return nil, err
	}
	return a, nil
}

// RestoreAssignment rebuilds a persisted row, open or closed.
func RestoreAssignment(
	id, orderID, companyID kernel.UUID,
	assignedAt time.Time,
	assignedBy *kernel.UUID,
	unassignedAt *time.Time,
	unassignReason string,
	unassignedBy *kernel.UUID,
) (*Assignment, error) {
	a, err := NewAssignment(id, orderID, companyID, assignedBy, assignedAt)
	if err != nil {
		return nil, err
	}
	a.unassignedAt = unassignedAt
	a.unassignReason = unassignReason
	a.unassignedBy = unassignedBy
	return a, nil
}

func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

func (a *Assignment) ID() kernel.UUID {
	return a.id
}

func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

func (a *Assignment) CompanyID() kernel.UUID {
	return a.companyID
}

func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

func (a *Assignment) AssignedBy() *kernel.UUID {
	return a.assignedBy
}

func (a *Assignment) UnassignedAt() *time.Time {
	return a.unassignedAt
}

func (a *Assignment) UnassignReason() string {
	return a.unassignReason
}

func (a *Assignment) UnassignedBy() *kernel.UUID {
	return a.unassignedBy
}

func (a *Assignment) IsActive() bool {
	return a.unassignedAt == nil
}

// BelongsTo reports whether the assignment is held by companyID.
func (a *Assignment) BelongsTo(companyID kernel.UUID) bool {
	return a.companyID.IsEqual(companyID)
}

// Close ends custody. A closed assignment is never reopened.
func (a *Assignment) Close(reason string, by *kernel.UUID, at time.Time) error {
	if !a.IsActive() {
		return errs.NewInvalidStateError("close assignment", "closed")
	}
	if at.Before(a.assignedAt) {
		return errs.NewValueIsInvalidError("unassigned_at is before assigned_at")
	}
	a.unassignedAt = &at
	a.unassignReason = strings.TrimSpace(reason)
	a.unassignedBy = by
	return nil
}
