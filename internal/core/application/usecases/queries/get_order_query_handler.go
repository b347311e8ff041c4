package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle shows an order to the dispatcher, to its holder, and to any company
// while the order sits in the open pool.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.orderID.Bytes()

	details, err := h.loadOrder(db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderDetails{}, errs.NewObjectNotFoundError("order", query.orderID.String())
		}
		return OrderDetails{}, err
	}

	if !query.actor.IsDispatcher() && details.Status != "open_pool" {
		if details.CurrentCompanyID == nil {
			return OrderDetails{}, errs.NewForbiddenError("view order " + query.orderID.String())
		}
		if err = query.actor.RequireActFor(*details.CurrentCompanyID, "view order"); err != nil {
			return OrderDetails{}, err
		}
	}

	if details.Assignments, err = h.loadAssignments(db, id); err != nil {
		return OrderDetails{}, err
	}
	if details.Delivery, err = h.loadDelivery(db, id); err != nil {
		return OrderDetails{}, err
	}
	return details, nil
}

func (h GetOrderQueryHandler) loadOrder(db *gorm.DB, id uuid.UUID) (OrderDetails, error) {
	var (
		details        OrderDetails
		reasonCategory sql.NullString
		reasonText     string
		reasonPhoto    string
		companyName    sql.NullString
	)

	row := db.Raw(`
		SELECT`+orderSummaryColumns+`,
			o.phone,
			o.reason_category,
			o.reason_text,
			o.reason_photo_ref,
			c.name,
			o.created_at,
			o.updated_at
		FROM installation_orders o
		LEFT JOIN companies c ON c.id = o.current_company_id
		WHERE o.id = ?
	`, id).Row()

	summary, err := scanOrderSummary(scanFunc(func(dest ...any) error {
		return row.Scan(append(dest,
			&details.Phone, &reasonCategory, &reasonText, &reasonPhoto,
			&companyName, &details.CreatedAt, &details.UpdatedAt,
		)...)
	}))
	if err != nil {
		return OrderDetails{}, err
	}

	details.OrderSummary = summary
	details.CurrentCompanyName = companyName.String
	if reasonCategory.Valid {
		details.Reason = &ReasonView{Category: reasonCategory.String, Text: reasonText, PhotoRef: reasonPhoto}
	}
	return details, nil
}

func (h GetOrderQueryHandler) loadAssignments(db *gorm.DB, id uuid.UUID) ([]AssignmentView, error) {
	rows, err := db.Raw(`
		SELECT a.company_id, c.name, a.assigned_at, a.unassigned_at, a.unassign_reason
		FROM order_assignments a
		JOIN companies c ON c.id = a.company_id
		WHERE a.order_id = ?
		ORDER BY a.assigned_at, a.id
	`, id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]AssignmentView, 0)
	for rows.Next() {
		var (
			a            AssignmentView
			companyID    uuid.UUID
			unassignedAt sql.NullTime
		)
		if err = rows.Scan(&companyID, &a.CompanyName, &a.AssignedAt, &unassignedAt, &a.UnassignReason); err != nil {
			return nil, err
		}
		if a.CompanyID, err = kernel.UUIDFromBytes(companyID[:]); err != nil {
			return nil, err
		}
		if unassignedAt.Valid {
			a.UnassignedAt = &unassignedAt.Time
		}
		history = append(history, a)
	}
	return history, rows.Err()
}

func (h GetOrderQueryHandler) loadDelivery(db *gorm.DB, id uuid.UUID) (*DeliveryView, error) {
	var (
		d             DeliveryView
		plannedDate   sql.NullTime
		deliveredDate sql.NullTime
	)
	err := db.Raw(`
		SELECT status, carrier, tracking_number, planned_date, delivered_date, notes
		FROM deliveries
		WHERE order_id = ?
	`, id).Row().Scan(&d.Status, &d.Carrier, &d.TrackingNumber, &plannedDate, &deliveredDate, &d.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	d.PlannedDate = nullableTime(plannedDate)
	d.DeliveredDate = nullableTime(deliveredDate)
	return &d, nil
}

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error {
	return f(dest...)
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
