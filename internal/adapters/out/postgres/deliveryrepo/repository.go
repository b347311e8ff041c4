// Package deliveryrepo tracks the kitchen delivery that precedes each installation.
package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DeliveryDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status         string    `gorm:"not null"`
	Carrier        string    `gorm:"not null;default:''"`
	TrackingNumber string    `gorm:"not null;default:''"`
	PlannedDate    *datatypes.Date
	DeliveredDate  *datatypes.Date
	Notes          string    `gorm:"not null;default:''"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

type GormDeliveryRepository struct {
	db *gorm.DB
}

func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("order_id = ?", dto.OrderID).
		Select("*").Omit("order_id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.OrderID().String())
	}
	return nil
}

func (r *GormDeliveryRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", orderID.String())
		}
		return nil, err
	}

	return delivery.RestoreDelivery(
		orderID,
		delivery.Status(dto.Status),
		dto.Carrier,
		dto.TrackingNumber,
		fromDate(dto.PlannedDate),
		fromDate(dto.DeliveredDate),
		dto.Notes,
		dto.UpdatedAt,
	)
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		OrderID:        d.OrderID().Bytes(),
		Status:         string(d.Status()),
		Carrier:        d.Carrier(),
		TrackingNumber: d.TrackingNumber(),
		PlannedDate:    toDate(d.PlannedDate()),
		DeliveredDate:  toDate(d.DeliveredDate()),
		Notes:          d.Notes(),
		UpdatedAt:      d.UpdatedAt(),
	}
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}

func fromDate(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}
