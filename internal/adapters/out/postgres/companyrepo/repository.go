package companyrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormCompanyRepository struct {
	db *gorm.DB
}

func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

func (r *GormCompanyRepository) Add(ctx context.Context, aggregate *company.Company) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormCompanyRepository) Get(ctx context.Context, id kernel.UUID) (*company.Company, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the row with SELECT ... FOR UPDATE.
func (r *GormCompanyRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*company.Company, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormCompanyRepository) get(db *gorm.DB, id kernel.UUID) (*company.Company, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CompanyDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("company", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// SavePerformance writes rating and counters only, so a concurrent balance
// adjustment is never overwritten.
func (r *GormCompanyRepository) SavePerformance(ctx context.Context, aggregate *company.Company) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	p := aggregate.Performance()
	result := r.db.WithContext(ctx).Model(&CompanyDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"rating":              aggregate.Rating(),
			"orders_total":        p.OrdersTotal,
			"orders_finished":     p.OrdersFinished,
			"company_fault_count": p.CompanyFaultCount,
			"not_possible_count":  p.NotPossibleCount,
			"storno_count":        p.StornoCount,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("company", aggregate.ID().String())
	}
	return nil
}

// AdjustBalance moves balance_eur in place: balance_eur = balance_eur + delta.
func (r *GormCompanyRepository) AdjustBalance(ctx context.Context, id kernel.UUID, delta kernel.Money) error {
	result := r.db.WithContext(ctx).Model(&CompanyDTO{}).
		Where("id = ?", id.Bytes()).
		Update("balance_eur", gorm.Expr("balance_eur + ?", delta.Decimal()))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("company", id.String())
	}
	return nil
}

func (r *GormCompanyRepository) List(ctx context.Context) ([]*company.Company, error) {
	var dtos []CompanyDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	companies := make([]*company.Company, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, nil
}
