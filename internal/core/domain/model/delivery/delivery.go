// Package delivery tracks shipment of the hardware an installation order needs.
// Every order has exactly one delivery record, created as planned with the order.
package delivery

import (
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusPlanned   Status = "planned"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusNone, StatusPlanned, StatusSent, StatusDelivered, StatusFailed:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("delivery_status", fmt.Errorf("%q is not a valid delivery status", s))
	}
}

type Delivery struct {
	orderID        kernel.UUID
	status         Status
	carrier        string
	trackingNumber string
	plannedDate    *time.Time
	deliveredDate  *time.Time
	notes          string
	updatedAt      time.Time
}

// NewPlanned creates the record that accompanies a new order.
func NewPlanned(orderID kernel.UUID, plannedDate time.Time, now time.Time) (*Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	d := &Delivery{orderID: orderID, status: StatusPlanned, updatedAt: now}
	if !plannedDate.IsZero() {
		d.plannedDate = &plannedDate
	}
	return d, nil
}

func RestoreDelivery(
	orderID kernel.UUID,
	status Status,
	carrier, trackingNumber string,
	plannedDate, deliveredDate *time.Time,
	notes string,
	updatedAt time.Time,
) (*Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	return &Delivery{
		orderID:        orderID,
		status:         status,
		carrier:        carrier,
		trackingNumber: trackingNumber,
		plannedDate:    plannedDate,
		deliveredDate:  deliveredDate,
		notes:          notes,
		updatedAt:      updatedAt,
	}, nil
}

func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

func (d *Delivery) Status() Status {
	return d.status
}

func (d *Delivery) Carrier() string {
	return d.carrier
}

func (d *Delivery) TrackingNumber() string {
	return d.trackingNumber
}

func (d *Delivery) PlannedDate() *time.Time {
	return d.plannedDate
}

func (d *Delivery) DeliveredDate() *time.Time {
	return d.deliveredDate
}

func (d *Delivery) Notes() string {
	return d.notes
}

func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// Update is a full replacement of the editable fields.
type Update struct {
	Status         Status
	Carrier        string
	TrackingNumber string
	PlannedDate    *time.Time
	DeliveredDate  *time.Time
	Notes          string
}

// Apply replaces the editable fields. A delivered shipment needs a delivery date.
func (d *Delivery) Apply(u Update, now time.Time) error {
	if _, err := ParseStatus(string(u.Status)); err != nil {
		return err
	}
	if u.Status == StatusDelivered && u.DeliveredDate == nil {
		return errs.NewValueIsRequiredError("delivered_date")
	}
	if u.Status == StatusSent && strings.TrimSpace(u.Carrier) == "" {
		return errs.NewValueIsRequiredError("carrier")
	}

	d.status = u.Status
	d.carrier = strings.TrimSpace(u.Carrier)
	d.trackingNumber = strings.TrimSpace(u.TrackingNumber)
	d.plannedDate = u.PlannedDate
	d.deliveredDate = u.DeliveredDate
	d.notes = strings.TrimSpace(u.Notes)
	d.updatedAt = now
	return nil
}
