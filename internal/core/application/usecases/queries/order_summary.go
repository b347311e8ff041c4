// Package queries contains the read side: list and detail views built with
// plain SQL over the dispatch tables. Queries never change state.
package queries

import (
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSummary is the row shown in pool and company order lists.
type OrderSummary struct {
	ID               kernel.UUID
	Number           string
	CustomerName     string
	Address          string
	Date             time.Time
	TimeFrom         string
	TimeTo           string
	Status           string
	CurrentCompanyID *kernel.UUID
	BasePrice        kernel.Money
	BonusPot         kernel.Money
	TakenFromPool    bool
}

const orderSummaryColumns = `
	o.id,
	o.order_number,
	o.customer_name,
	o.address,
	o.date,
	to_char(o.time_from, 'HH24:MI'),
	to_char(o.time_to, 'HH24:MI'),
	o.status,
	o.current_company_id,
	o.base_price_eur,
	o.bonus_pot_eur,
	o.taken_from_pool`

func scanOrderSummaries(rows *sql.Rows) ([]OrderSummary, error) {
	result := make([]OrderSummary, 0)
	for rows.Next() {
		s, err := scanOrderSummary(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrderSummary(row scanner) (OrderSummary, error) {
	var (
		s              OrderSummary
		id             uuid.UUID
		currentCompany uuid.NullUUID
		basePrice      decimal.Decimal
		bonusPot       decimal.Decimal
	)

	if err := row.Scan(
		&id,
		&s.Number,
		&s.CustomerName,
		&s.Address,
		&s.Date,
		&s.TimeFrom,
		&s.TimeTo,
		&s.Status,
		&currentCompany,
		&basePrice,
		&bonusPot,
		&s.TakenFromPool,
	); err != nil {
		return OrderSummary{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderSummary{}, err
	}
	s.ID = orderID

	if currentCompany.Valid {
		companyID, idErr := kernel.UUIDFromBytes(currentCompany.UUID[:])
		if idErr != nil {
			return OrderSummary{}, idErr
		}
		s.CurrentCompanyID = &companyID
	}
	s.BasePrice = kernel.NewMoney(basePrice)
	s.BonusPot = kernel.NewMoney(bonusPot)
	return s, nil
}
