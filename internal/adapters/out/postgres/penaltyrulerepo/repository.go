// Package penaltyrulerepo stores the penalty bands.
package penaltyrulerepo

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/penalty"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RuleDTO struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                   string          `gorm:"not null"`
	HoursBeforeInstallFrom int             `gorm:"not null"`
	HoursBeforeInstallTo   int             `gorm:"not null"`
	PenaltyEUR             decimal.Decimal `gorm:"column:penalty_eur;type:numeric(12,2);not null"`
	IsActive               bool            `gorm:"not null"`
}

func (RuleDTO) TableName() string {
	return "penalty_rules"
}

type GormPenaltyRuleRepository struct {
	db *gorm.DB
}

func NewGormPenaltyRuleRepository(db *gorm.DB) *GormPenaltyRuleRepository {
	return &GormPenaltyRuleRepository{db: db}
}

func (r *GormPenaltyRuleRepository) ListActive(ctx context.Context) ([]penalty.Rule, error) {
	var dtos []RuleDTO
	if err := r.db.WithContext(ctx).
		Where("is_active").
		Order("hours_before_install_from, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	rules := make([]penalty.Rule, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		rule, err := penalty.NewRule(
			id, dto.Name, dto.HoursBeforeInstallFrom, dto.HoursBeforeInstallTo,
			kernel.NewMoney(dto.PenaltyEUR), dto.IsActive,
		)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// ReplaceAll must run inside a transaction; readers never see an empty table.
func (r *GormPenaltyRuleRepository) ReplaceAll(ctx context.Context, rules []penalty.Rule) error {
	db := r.db.WithContext(ctx)
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&RuleDTO{}).Error; err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}

	dtos := make([]RuleDTO, 0, len(rules))
	for _, rule := range rules {
		dtos = append(dtos, RuleDTO{
			ID:                     rule.ID().Bytes(),
			Name:                   rule.Name(),
			HoursBeforeInstallFrom: rule.HoursFrom(),
			HoursBeforeInstallTo:   rule.HoursTo(),
			PenaltyEUR:             rule.Penalty().Decimal(),
			IsActive:               rule.IsActive(),
		})
	}
	return db.Create(&dtos).Error
}
