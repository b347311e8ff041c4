// Package company models a partner installation company: its reputation
// rating, the outcome counters the rating is derived from, and the balance
// mirrored from the ledger.
package company

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrCompanyIsNotConstructed = errors.New("Company must be created via NewCompany constructor")

var (
	MinRating = decimal.NewFromInt(1)
	MaxRating = decimal.NewFromInt(5)
)

// Performance holds the outcome counters over the company's current orders.
type Performance struct {
	OrdersTotal       int
	OrdersFinished    int
	CompanyFaultCount int
	NotPossibleCount  int
	StornoCount       int
}

// Company is changed only through ApplyPerformance (rating and counters) and
// by the ledger (balance). The balance is never written from here.
type Company struct {
	id          kernel.UUID
	name        string
	email       string
	rating      decimal.Decimal
	performance Performance
	balance     kernel.Money
	createdAt   time.Time

	isConstructed bool
}

// NewCompany creates a company with a perfect rating and an empty wallet.
func NewCompany(id kernel.UUID, name, email string, now time.Time) (*Company, error) {
	c := &Company{
		email:         strings.TrimSpace(email),
		rating:        MaxRating,
		balance:       kernel.ZeroMoney(),
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}
	return c, nil
}

func RestoreCompany(
	id kernel.UUID,
	name, email string,
	rating decimal.Decimal,
	performance Performance,
	balance kernel.Money,
	createdAt time.Time,
) (*Company, error) {
	c := &Company{
		email:         email,
		performance:   performance,
		balance:       balance,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setRating(rating),
	); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Company) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCompanyIsNotConstructed
	}
	return nil
}

func (c *Company) ID() kernel.UUID {
	return c.id
}

func (c *Company) Name() string {
	return c.name
}

func (c *Company) Email() string {
	return c.email
}

func (c *Company) Rating() decimal.Decimal {
	return c.rating
}

func (c *Company) Performance() Performance {
	return c.performance
}

// Balance is the denormalized ledger sum as last loaded.
func (c *Company) Balance() kernel.Money {
	return c.balance
}

func (c *Company) CreatedAt() time.Time {
	return c.createdAt
}

// ApplyPerformance overwrites counters and rating with a fresh evaluation.
func (c *Company) ApplyPerformance(p Performance, rating decimal.Decimal) error {
	if err := c.setRating(rating); err != nil {
		return err
	}
	c.performance = p
	return nil
}

func (c *Company) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Company) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Company) setRating(rating decimal.Decimal) error {
	if rating.LessThan(MinRating) || rating.GreaterThan(MaxRating) {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	c.rating = rating
	return nil
}
