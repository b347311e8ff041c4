package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetWalletQueryHandler struct {
	db *gorm.DB
}

func NewGetWalletQueryHandler(db *gorm.DB) GetWalletQueryHandler {
	return GetWalletQueryHandler{db: db}
}

func (h GetWalletQueryHandler) Handle(ctx context.Context, query GetWalletQuery) (Wallet, error) {
	if err := query.Validate(); err != nil {
		return Wallet{}, err
	}
	if err := query.actor.RequireActFor(query.companyID, "view wallet"); err != nil {
		return Wallet{}, err
	}

	db := h.db.WithContext(ctx)
	wallet := Wallet{CompanyID: query.companyID, Entries: make([]WalletEntry, 0)}

	var balance decimal.Decimal
	err := db.Raw(`SELECT name, balance_eur FROM companies WHERE id = ?`, query.companyID.Bytes()).
		Row().Scan(&wallet.CompanyName, &balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Wallet{}, errs.NewObjectNotFoundError("company", query.companyID.String())
		}
		return Wallet{}, err
	}
	wallet.Balance = kernel.NewMoney(balance)

	rows, err := db.Raw(`
		SELECT
			e.id,
			e.order_id,
			COALESCE(o.order_number, ''),
			e.entry_type,
			e.source,
			e.amount_eur,
			e.comment,
			e.created_at
		FROM ledger_entries e
		LEFT JOIN installation_orders o ON o.id = e.order_id
		WHERE e.company_id = ?
		ORDER BY e.created_at, e.id
	`, query.companyID.Bytes()).Rows()
	if err != nil {
		return Wallet{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry   WalletEntry
			id      uuid.UUID
			orderID uuid.NullUUID
			amount  decimal.Decimal
		)
		if err = rows.Scan(
			&id, &orderID, &entry.OrderNumber, &entry.Type, &entry.Source,
			&amount, &entry.Comment, &entry.CreatedAt,
		); err != nil {
			return Wallet{}, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return Wallet{}, err
		}
		if orderID.Valid {
			oid, idErr := kernel.UUIDFromBytes(orderID.UUID[:])
			if idErr != nil {
				return Wallet{}, idErr
			}
			entry.OrderID = &oid
		}
		entry.Amount = kernel.NewMoney(amount)
		wallet.Entries = append(wallet.Entries, entry)
	}

	return wallet, rows.Err()
}
