// Package companyrepo persists installation companies.
package companyrepo

import (
	"time"

	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CompanyDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name              string          `gorm:"not null"`
	Email             string          `gorm:"not null;default:''"`
	Rating            decimal.Decimal `gorm:"type:numeric(3,2);not null"`
	OrdersTotal       int             `gorm:"not null"`
	OrdersFinished    int             `gorm:"not null"`
	CompanyFaultCount int             `gorm:"not null"`
	NotPossibleCount  int             `gorm:"not null"`
	StornoCount       int             `gorm:"not null"`
	BalanceEUR        decimal.Decimal `gorm:"column:balance_eur;type:numeric(12,2);not null"`
	CreatedAt         time.Time       `gorm:"autoCreateTime:false"`
}

func (CompanyDTO) TableName() string {
	return "companies"
}

func fromDomain(c *company.Company) CompanyDTO {
	p := c.Performance()
	return CompanyDTO{
		ID:                c.ID().Bytes(),
		Name:              c.Name(),
		Email:             c.Email(),
		Rating:            c.Rating(),
		OrdersTotal:       p.OrdersTotal,
		OrdersFinished:    p.OrdersFinished,
		CompanyFaultCount: p.CompanyFaultCount,
		NotPossibleCount:  p.NotPossibleCount,
		StornoCount:       p.StornoCount,
		BalanceEUR:        c.Balance().Decimal(),
		CreatedAt:         c.CreatedAt(),
	}
}

func toDomain(dto CompanyDTO) (*company.Company, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return company.RestoreCompany(
		id,
		dto.Name,
		dto.Email,
		dto.Rating,
		company.Performance{
			OrdersTotal:       dto.OrdersTotal,
			OrdersFinished:    dto.OrdersFinished,
			CompanyFaultCount: dto.CompanyFaultCount,
			NotPossibleCount:  dto.NotPossibleCount,
			StornoCount:       dto.StornoCount,
		},
		kernel.NewMoney(dto.BalanceEUR),
		dto.CreatedAt,
	)
}
