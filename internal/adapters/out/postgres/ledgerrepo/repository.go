// Package ledgerrepo is the append-only store behind the company wallet.
package ledgerrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EntryDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID       `gorm:"type:uuid;not null"`
	OrderID   *uuid.UUID      `gorm:"type:uuid"`
	EntryType string          `gorm:"not null"`
	Source    string          `gorm:"not null"`
	AmountEUR decimal.Decimal `gorm:"column:amount_eur;type:numeric(12,2);not null"`
	Comment   string          `gorm:"not null;default:''"`
	CreatedBy *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt time.Time       `gorm:"autoCreateTime:false"`
}

func (EntryDTO) TableName() string {
	return "ledger_entries"
}

type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

func (r *GormLedgerRepository) Add(ctx context.Context, entry *ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := EntryDTO{
		ID:        entry.ID().Bytes(),
		CompanyID: entry.CompanyID().Bytes(),
		OrderID:   kernel.OptionalBytes(entry.OrderID()),
		EntryType: string(entry.Type()),
		Source:    string(entry.Source()),
		AmountEUR: entry.Amount().Decimal(),
		Comment:   entry.Comment(),
		CreatedBy: kernel.OptionalBytes(entry.CreatedBy()),
		CreatedAt: entry.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormLedgerRepository) SumByCompany(ctx context.Context, companyID kernel.UUID) (kernel.Money, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&EntryDTO{}).
		Select("COALESCE(SUM(amount_eur), 0)").
		Where("company_id = ?", companyID.Bytes()).
		Scan(&sum).Error
	if err != nil {
		return kernel.Money{}, err
	}
	return kernel.NewMoney(sum), nil
}

func (r *GormLedgerRepository) ListByCompany(ctx context.Context, companyID kernel.UUID) ([]*ledger.Entry, error) {
	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*ledger.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func toDomain(dto EntryDTO) (*ledger.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.OptionalUUIDFromBytes(dto.OrderID)
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.OptionalUUIDFromBytes(dto.CreatedBy)
	if err != nil {
		return nil, err
	}

	return ledger.NewEntry(ledger.NewEntryParams{
		ID:        id,
		CompanyID: companyID,
		OrderID:   orderID,
		Type:      ledger.EntryType(dto.EntryType),
		Source:    ledger.Source(dto.Source),
		Amount:    kernel.NewMoney(dto.AmountEUR),
		Comment:   dto.Comment,
		CreatedBy: createdBy,
		CreatedAt: dto.CreatedAt,
	})
}
