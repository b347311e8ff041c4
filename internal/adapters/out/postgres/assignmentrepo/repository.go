package assignmentrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add relies on uq_active_assignment_per_order: a second open row for the
// same order is reported as a conflict.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("order assignment", aggregate.OrderID().String(), err)
		}
		return err
	}
	return nil
}

func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"unassigned_at":   dto.UnassignedAt,
			"unassign_reason": dto.UnassignReason,
			"unassigned_by":   dto.UnassignedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", aggregate.ID().String())
	}
	return nil
}

func (r *GormAssignmentRepository) FindActiveByOrder(
	ctx context.Context, orderID kernel.UUID,
) (*assignment.Assignment, error) {
	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND unassigned_at IS NULL", orderID.Bytes()).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormAssignmentRepository) ListByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("assigned_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	result := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}
