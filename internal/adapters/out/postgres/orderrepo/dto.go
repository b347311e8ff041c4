// Package orderrepo maps installation orders to the installation_orders table.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderDTO struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderNumber      string         `gorm:"uniqueIndex:uq_order_number;not null"`
	CustomerName     string         `gorm:"not null"`
	Address          string         `gorm:"not null"`
	Phone            string         `gorm:"not null;default:''"`
	Date             datatypes.Date `gorm:"not null"`
	TimeFrom         datatypes.Time `gorm:"type:time;not null"`
	TimeTo           datatypes.Time `gorm:"type:time;not null"`
	Status           string         `gorm:"index;not null"`
	CurrentCompanyID *uuid.UUID     `gorm:"type:uuid;index"`
	ReasonCategory   *string
	ReasonText       string          `gorm:"not null;default:''"`
	ReasonPhotoRef   string          `gorm:"not null;default:''"`
	BasePriceEUR     decimal.Decimal `gorm:"column:base_price_eur;type:numeric(12,2);not null"`
	BonusPotEUR      decimal.Decimal `gorm:"column:bonus_pot_eur;type:numeric(12,2);not null"`
	TakenFromPool    bool            `gorm:"not null"`
	CreatedBy        *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt        time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "installation_orders"
}

func fromDomain(o *order.Order) OrderDTO {
	schedule := o.Schedule()
	dto := OrderDTO{
		ID:               o.ID().Bytes(),
		OrderNumber:      o.Number(),
		CustomerName:     o.Customer().Name(),
		Address:          o.Customer().Address(),
		Phone:            o.Customer().Phone(),
		Date:             datatypes.Date(schedule.Date()),
		TimeFrom:         toColumnTime(schedule.TimeFrom()),
		TimeTo:           toColumnTime(schedule.TimeTo()),
		Status:           o.Status().String(),
		CurrentCompanyID: kernel.OptionalBytes(o.CurrentCompany()),
		BasePriceEUR:     o.BasePrice().Decimal(),
		BonusPotEUR:      o.BonusPot().Decimal(),
		TakenFromPool:    o.TakenFromPool(),
		CreatedBy:        kernel.OptionalBytes(o.CreatedBy()),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}

	if r := o.Reason(); r != nil {
		category := string(r.Category())
		dto.ReasonCategory = &category
		dto.ReasonText = r.Text()
		dto.ReasonPhotoRef = r.PhotoRef()
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	currentCompany, err := kernel.OptionalUUIDFromBytes(dto.CurrentCompanyID)
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.OptionalUUIDFromBytes(dto.CreatedBy)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	customer, err := order.NewCustomer(dto.CustomerName, dto.Address, dto.Phone)
	if err != nil {
		return nil, err
	}
	schedule, err := toSchedule(dto)
	if err != nil {
		return nil, err
	}

	var reason *order.Reason
	if dto.ReasonCategory != nil {
		r, reasonErr := order.NewReason(order.ReasonCategory(*dto.ReasonCategory), dto.ReasonText, dto.ReasonPhotoRef)
		if reasonErr != nil {
			return nil, reasonErr
		}
		reason = &r
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:             id,
		Number:         dto.OrderNumber,
		Customer:       customer,
		Schedule:       schedule,
		Status:         status,
		CurrentCompany: currentCompany,
		Reason:         reason,
		BasePrice:      kernel.NewMoney(dto.BasePriceEUR),
		BonusPot:       kernel.NewMoney(dto.BonusPotEUR),
		TakenFromPool:  dto.TakenFromPool,
		CreatedBy:      createdBy,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
	})
}

func toSchedule(dto OrderDTO) (order.Schedule, error) {
	from, err := fromColumnTime(dto.TimeFrom)
	if err != nil {
		return order.Schedule{}, err
	}
	to, err := fromColumnTime(dto.TimeTo)
	if err != nil {
		return order.Schedule{}, err
	}
	return order.NewSchedule(time.Time(dto.Date), from, to)
}

func toColumnTime(t order.TimeOfDay) datatypes.Time {
	return datatypes.NewTime(t.Hour(), t.Minute(), 0, 0)
}

func fromColumnTime(t datatypes.Time) (order.TimeOfDay, error) {
	d := time.Duration(t)
	return order.NewTimeOfDay(int(d/time.Hour), int(d%time.Hour/time.Minute))
}
