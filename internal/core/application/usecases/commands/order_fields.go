package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderFields is the dispatcher-entered content of a new order, either typed
// in by hand or read off an intake document.
type OrderFields struct {
	Number       string
	CustomerName string
	Address      string
	Phone        string
	Date         time.Time
	TimeFrom     string
	TimeTo       string
	BasePrice    kernel.Money
}

func (f OrderFields) customer() (order.Customer, error) {
	return order.NewCustomer(f.CustomerName, f.Address, f.Phone)
}

func (f OrderFields) schedule() (order.Schedule, error) {
	from, fromErr := order.ParseTimeOfDay(f.TimeFrom)
	to, toErr := order.ParseTimeOfDay(f.TimeTo)
	if err := errors.Join(fromErr, toErr); err != nil {
		return order.Schedule{}, err
	}
	return order.NewSchedule(f.Date, from, to)
}

// validate checks everything that can be checked without storage.
func (f OrderFields) validate() error {
	_, customerErr := f.customer()
	_, scheduleErr := f.schedule()
	return errors.Join(customerErr, scheduleErr)
}

// createOrder inserts an inbox order together with its planned delivery record.
func createOrder(
	ctx context.Context,
	uow UoW,
	fields OrderFields,
	createdBy *kernel.UUID,
	now time.Time,
) (*order.Order, error) {
	customer, err := fields.customer()
	if err != nil {
		return nil, err
	}
	schedule, err := fields.schedule()
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), fields.Number, customer, schedule, fields.BasePrice, createdBy, now)
	if err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	d, err := delivery.NewPlanned(o.ID(), schedule.Date(), now)
	if err != nil {
		return nil, err
	}
	if err = uow.DeliveryRepository().Add(ctx, d); err != nil {
		return nil, err
	}

	return o, nil
}
