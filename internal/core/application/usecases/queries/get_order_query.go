package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery loads one order with its assignment history and delivery.
type GetOrderQuery struct {
	orderID kernel.UUID
	actor   actor.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, a actor.Actor) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), a.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

type ReasonView struct {
	Category string
	Text     string
	PhotoRef string
}

type AssignmentView struct {
	CompanyID      kernel.UUID
	CompanyName    string
	AssignedAt     time.Time
	UnassignedAt   *time.Time
	UnassignReason string
}

type DeliveryView struct {
	Status         string
	Carrier        string
	TrackingNumber string
	PlannedDate    *time.Time
	DeliveredDate  *time.Time
	Notes          string
}

type OrderDetails struct {
	OrderSummary
	Phone              string
	CurrentCompanyName string
	Reason             *ReasonView
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Assignments        []AssignmentView
	Delivery           *DeliveryView
}
