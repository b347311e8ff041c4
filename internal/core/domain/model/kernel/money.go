package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyPlaces is the precision of every EUR amount stored by the ledger.
const moneyPlaces = 2

// Money is a signed EUR amount with cent precision. Values are rounded to two
// decimal places on construction so equality is exact.
type Money struct {
	amount decimal.Decimal
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(moneyPlaces)}
}

// MoneyFromString parses "12.50" style amounts.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a decimal: %w", s, err))
	}
	return NewMoney(d), nil
}

// MustMoney is MoneyFromString for literals. It panics on bad input.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

func (m Money) Sub(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

func (m Money) Neg() Money {
	return NewMoney(m.amount.Neg())
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly two decimals, e.g. "-20.00".
func (m Money) String() string {
	return m.amount.StringFixed(moneyPlaces)
}
