// Package assignmentrepo persists the order_assignments history.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AssignmentDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID  `gorm:"type:uuid;not null"`
	CompanyID      uuid.UUID  `gorm:"type:uuid;not null"`
	AssignedAt     time.Time  `gorm:"not null"`
	AssignedBy     *uuid.UUID `gorm:"type:uuid"`
	UnassignedAt   *time.Time
	UnassignReason string     `gorm:"not null;default:''"`
	UnassignedBy   *uuid.UUID `gorm:"type:uuid"`
}

func (AssignmentDTO) TableName() string {
	return "order_assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:             a.ID().Bytes(),
		OrderID:        a.OrderID().Bytes(),
		CompanyID:      a.CompanyID().Bytes(),
		AssignedAt:     a.AssignedAt(),
		AssignedBy:     kernel.OptionalBytes(a.AssignedBy()),
		UnassignedAt:   a.UnassignedAt(),
		UnassignReason: a.UnassignReason(),
		UnassignedBy:   kernel.OptionalBytes(a.UnassignedBy()),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}
	assignedBy, err := kernel.OptionalUUIDFromBytes(dto.AssignedBy)
	if err != nil {
		return nil, err
	}
	unassignedBy, err := kernel.OptionalUUIDFromBytes(dto.UnassignedBy)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id, orderID, companyID,
		dto.AssignedAt, assignedBy,
		dto.UnassignedAt, dto.UnassignReason, unassignedBy,
	)
}
